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

// Package oauth implements the connect and disconnect flows against the
// identity providers. Providers are consumed only through their public
// endpoints; every endpoint URL is a field so that tests can point a client at
// a fake provider.
package oauth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Credentials is a verified provider token. For Google the subject is known at
// exchange time from the identity token; for Facebook it is only known after
// the profile fetch.
type Credentials struct {
	AccessToken string
	Subject     string
}

// Profile is the identity a provider reports for a verified token
type Profile struct {
	Subject string
	Name    string
	Email   string
	Picture string
}

// Error is a rejection of a connect or disconnect attempt. Reason is safe to
// surface to the caller; Err carries the underlying cause, if any.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Reason
	}

	return fmt.Sprintf("%s: %v", e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// Reject builds a rejection with the given reason
func Reject(err error, reason string) *Error {
	return &Error{Reason: reason, Err: err}
}

// Reasons reported when a verification gate fails. The state gate is checked
// by the handler before any provider call.
const (
	ReasonInvalidState    = "Invalid state parameter."
	ReasonExchangeFailed  = "Failed to upgrade the authorization code."
	ReasonSubjectMismatch = "Token's user ID doesn't match given user ID."
	ReasonClientMismatch  = "Token's client ID does not match app's."
	ReasonNotConnected    = "Current user not connected."
	ReasonRevokeFailed    = "Failed to revoke token for given user."
)

func defaultClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func getJSON(client *http.Client, url string, v interface{}) error {
	res, err := client.Get(url)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	return json.NewDecoder(res.Body).Decode(v)
}
