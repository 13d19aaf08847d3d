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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/libris/libris/pkg/assert"
)

func newTestFacebook(server *httptest.Server) Facebook {
	f := NewFacebook("test-app-id", "test-app-secret")
	f.GraphURL = server.URL
	f.HTTPClient = server.Client()

	return f
}

func fakeFacebookServer(t *testing.T, exchangeReply string, revokeMethod *string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(exchangeReply))
	})

	mux.HandleFunc("/v2.8/me", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":    "fb-789",
			"name":  "Bob",
			"email": "bob@example.com",
		})
	})

	mux.HandleFunc("/v2.8/me/picture", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"url": "https://example.com/bob.png"},
		})
	})

	mux.HandleFunc("/fb-789/permissions", func(w http.ResponseWriter, r *http.Request) {
		if revokeMethod != nil {
			*revokeMethod = r.Method
		}
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func TestFacebookExchange(t *testing.T) {
	server := fakeFacebookServer(t, `{"access_token":"long-lived-token","expires_in":5184000}`, nil)
	f := newTestFacebook(server)

	cred, err := f.Exchange(context.Background(), "short-token")
	if err != nil {
		t.Fatalf("exchanging token: %v", err)
	}

	assert.Equal(t, cred.AccessToken, "long-lived-token", "access token mismatch")
}

func TestFacebookExchangeLegacyReply(t *testing.T) {
	server := fakeFacebookServer(t, "access_token=legacy-token&expires=5184000", nil)
	f := newTestFacebook(server)

	cred, err := f.Exchange(context.Background(), "short-token")
	if err != nil {
		t.Fatalf("exchanging token: %v", err)
	}

	assert.Equal(t, cred.AccessToken, "legacy-token", "access token mismatch")
}

func TestFacebookExchangeMalformedReply(t *testing.T) {
	testCases := []string{
		"nonsense",
		`{"unexpected":"shape"}`,
		`{"error":{"message":"invalid token"}}`,
		"",
	}

	for _, reply := range testCases {
		server := fakeFacebookServer(t, reply, nil)
		f := newTestFacebook(server)

		_, err := f.Exchange(context.Background(), "short-token")

		var rejection *Error
		if !errorAs(err, &rejection) {
			t.Fatalf("reply %q: expected a rejection, got %v", reply, err)
		}
		assert.Equal(t, rejection.Reason, ReasonExchangeFailed, "reason mismatch")
	}
}

func TestFacebookFetchProfile(t *testing.T) {
	server := fakeFacebookServer(t, "", nil)
	f := newTestFacebook(server)

	profile, err := f.FetchProfile(context.Background(), Credentials{AccessToken: "long-lived-token"})
	if err != nil {
		t.Fatalf("fetching profile: %v", err)
	}

	expected := Profile{
		Subject: "fb-789",
		Name:    "Bob",
		Email:   "bob@example.com",
		Picture: "https://example.com/bob.png",
	}
	assert.DeepEqual(t, profile, expected, "profile mismatch")
}

func TestFacebookRevoke(t *testing.T) {
	var method string
	server := fakeFacebookServer(t, "", &method)
	f := newTestFacebook(server)

	err := f.Revoke(context.Background(), "fb-789", "long-lived-token")
	if err != nil {
		t.Fatalf("revoking: %v", err)
	}

	// Facebook revokes via a DELETE to the permissions endpoint
	assert.Equal(t, method, "DELETE", "revoke method mismatch")
}
