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
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

const (
	googleAuthURL      = "https://accounts.google.com/o/oauth2/auth"
	googleTokenURL     = "https://oauth2.googleapis.com/token"
	googleTokenInfoURL = "https://www.googleapis.com/oauth2/v1/tokeninfo"
	googleUserInfoURL  = "https://www.googleapis.com/oauth2/v1/userinfo"
	googleRevokeURL    = "https://accounts.google.com/o/oauth2/revoke"
)

// Google is a client for the Google connect and disconnect flows
type Google struct {
	ClientID     string
	ClientSecret string
	Endpoint     oauth2.Endpoint
	TokenInfoURL string
	UserInfoURL  string
	RevokeURL    string
	HTTPClient   *http.Client
}

// NewGoogle returns a Google client against the production endpoints
func NewGoogle(clientID, clientSecret string) Google {
	return Google{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  googleAuthURL,
			TokenURL: googleTokenURL,
		},
		TokenInfoURL: googleTokenInfoURL,
		UserInfoURL:  googleUserInfoURL,
		RevokeURL:    googleRevokeURL,
		HTTPClient:   defaultClient(),
	}
}

func (g Google) client() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}

	return defaultClient()
}

type tokenInfo struct {
	UserID           string `json:"user_id"`
	IssuedTo         string `json:"issued_to"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// Exchange upgrades the authorization code into verified credentials. It runs
// the verification gates in order: code exchange, token introspection, subject
// match against the identity token, and audience match against the app's
// client id. The first failing gate rejects the attempt.
func (g Google) Exchange(ctx context.Context, code string) (Credentials, error) {
	conf := &oauth2.Config{
		ClientID:     g.ClientID,
		ClientSecret: g.ClientSecret,
		Endpoint:     g.Endpoint,
		// The login page posts the code via the postmessage flow
		RedirectURL: "postmessage",
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.client())
	token, err := conf.Exchange(ctx, code)
	if err != nil {
		return Credentials{}, Reject(err, ReasonExchangeFailed)
	}

	subject, err := idTokenSubject(token)
	if err != nil {
		return Credentials{}, Reject(err, ReasonExchangeFailed)
	}

	var info tokenInfo
	infoURL := fmt.Sprintf("%s?access_token=%s", g.TokenInfoURL, url.QueryEscape(token.AccessToken))
	if err := getJSON(g.client(), infoURL, &info); err != nil {
		return Credentials{}, Reject(err, ReasonExchangeFailed)
	}

	if info.Error != "" {
		reason := info.Error
		if info.ErrorDescription != "" {
			reason = fmt.Sprintf("%s: %s", info.Error, info.ErrorDescription)
		}
		return Credentials{}, Reject(nil, reason)
	}

	if info.UserID != subject {
		return Credentials{}, Reject(nil, ReasonSubjectMismatch)
	}

	if info.IssuedTo != g.ClientID {
		return Credentials{}, Reject(nil, ReasonClientMismatch)
	}

	return Credentials{AccessToken: token.AccessToken, Subject: subject}, nil
}

// FetchProfile fetches the user info for the verified credentials
func (g Google) FetchProfile(ctx context.Context, cred Credentials) (Profile, error) {
	var data struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}

	infoURL := fmt.Sprintf("%s?access_token=%s&alt=json", g.UserInfoURL, url.QueryEscape(cred.AccessToken))
	if err := getJSON(g.client(), infoURL, &data); err != nil {
		return Profile{}, Reject(err, "Failed to fetch user info.")
	}

	return Profile{
		Subject: cred.Subject,
		Name:    data.Name,
		Email:   data.Email,
		Picture: data.Picture,
	}, nil
}

// Revoke revokes the given access token at the provider. The provider revokes
// over HTTP GET and reports success with a 200 status.
func (g Google) Revoke(ctx context.Context, accessToken string) error {
	revokeURL := fmt.Sprintf("%s?token=%s", g.RevokeURL, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, "GET", revokeURL, nil)
	if err != nil {
		return errors.Wrap(err, "constructing revoke request")
	}

	res, err := g.client().Do(req)
	if err != nil {
		return Reject(err, ReasonRevokeFailed)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Reject(nil, ReasonRevokeFailed)
	}

	return nil
}

// idTokenSubject extracts the subject claim from the identity token that
// accompanies the access token
func idTokenSubject(token *oauth2.Token) (string, error) {
	raw, ok := token.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", errors.New("missing id_token")
	}

	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return "", errors.New("malformed id_token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return "", errors.Wrap(err, "decoding id_token claims")
	}

	var claims struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", errors.Wrap(err, "parsing id_token claims")
	}
	if claims.Sub == "" {
		return "", errors.New("id_token has no subject")
	}

	return claims.Sub, nil
}
