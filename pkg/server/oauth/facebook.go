/* Copyright 2025 Libris Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

const (
	facebookGraphURL = "https://graph.facebook.com"
)

// Facebook is a client for the Facebook connect and disconnect flows
type Facebook struct {
	AppID      string
	AppSecret  string
	GraphURL   string
	HTTPClient *http.Client
}

// NewFacebook returns a Facebook client against the production graph endpoints
func NewFacebook(appID, appSecret string) Facebook {
	return Facebook{
		AppID:      appID,
		AppSecret:  appSecret,
		GraphURL:   facebookGraphURL,
		HTTPClient: defaultClient(),
	}
}

func (f Facebook) client() *http.Client {
	if f.HTTPClient != nil {
		return f.HTTPClient
	}

	return defaultClient()
}

// Exchange upgrades the short-lived token from the login page into a
// long-lived token. The subject is not known until the profile fetch.
func (f Facebook) Exchange(ctx context.Context, shortToken string) (Credentials, error) {
	q := url.Values{}
	q.Set("grant_type", "fb_exchange_token")
	q.Set("client_id", f.AppID)
	q.Set("client_secret", f.AppSecret)
	q.Set("fb_exchange_token", shortToken)

	res, err := f.client().Get(fmt.Sprintf("%s/oauth/access_token?%s", f.GraphURL, q.Encode()))
	if err != nil {
		return Credentials{}, Reject(err, ReasonExchangeFailed)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return Credentials{}, Reject(err, ReasonExchangeFailed)
	}

	token, err := parseExchangeReply(body)
	if err != nil {
		return Credentials{}, Reject(err, ReasonExchangeFailed)
	}

	return Credentials{AccessToken: token}, nil
}

// FetchProfile fetches the user's profile and picture with the long-lived
// token and fills in the subject
func (f Facebook) FetchProfile(ctx context.Context, cred Credentials) (Profile, error) {
	var data struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}

	q := url.Values{}
	q.Set("access_token", cred.AccessToken)
	q.Set("fields", "name,id,email")
	if err := getJSON(f.client(), fmt.Sprintf("%s/v2.8/me?%s", f.GraphURL, q.Encode()), &data); err != nil {
		return Profile{}, Reject(err, "Failed to fetch user info.")
	}
	if data.Error != nil {
		return Profile{}, Reject(nil, data.Error.Message)
	}

	var picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}

	q = url.Values{}
	q.Set("access_token", cred.AccessToken)
	q.Set("redirect", "0")
	q.Set("height", "200")
	q.Set("width", "200")
	if err := getJSON(f.client(), fmt.Sprintf("%s/v2.8/me/picture?%s", f.GraphURL, q.Encode()), &picture); err != nil {
		return Profile{}, Reject(err, "Failed to fetch user picture.")
	}

	return Profile{
		Subject: data.ID,
		Name:    data.Name,
		Email:   data.Email,
		Picture: picture.Data.URL,
	}, nil
}

// Revoke deletes the app's permission grant for the given subject
func (f Facebook) Revoke(ctx context.Context, subject, accessToken string) error {
	q := url.Values{}
	q.Set("access_token", accessToken)
	revokeURL := fmt.Sprintf("%s/%s/permissions?%s", f.GraphURL, url.PathEscape(subject), q.Encode())

	req, err := http.NewRequestWithContext(ctx, "DELETE", revokeURL, nil)
	if err != nil {
		return errors.Wrap(err, "constructing revoke request")
	}

	res, err := f.client().Do(req)
	if err != nil {
		return Reject(err, ReasonRevokeFailed)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Reject(nil, ReasonRevokeFailed)
	}

	return nil
}

// parseExchangeReply parses the provider's token-exchange reply. The reply
// format is provider-defined: current API versions return JSON while older
// versions return comma-separated key=value text. Anything else is treated as
// a rejection, not a parse fault.
func parseExchangeReply(body []byte) (string, error) {
	var reply struct {
		AccessToken string `json:"access_token"`
		Error       *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &reply); err == nil {
		if reply.Error != nil {
			return "", errors.Errorf("provider error: %s", reply.Error.Message)
		}
		if reply.AccessToken != "" {
			return reply.AccessToken, nil
		}
		return "", errors.New("exchange reply has no access token")
	}

	// Legacy key=value form: access_token=...&expires=...
	for _, pair := range strings.Split(string(body), "&") {
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 && kv[0] == "access_token" && kv[1] != "" {
			return kv[1], nil
		}
	}

	return "", errors.New("unrecognized exchange reply format")
}
