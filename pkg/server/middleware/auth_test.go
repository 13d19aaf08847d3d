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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/libris/libris/pkg/assert"
	"github.com/libris/libris/pkg/server/context"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/testutils"
)

func TestAuth(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com")

	session := database.Session{
		Key:       "A9xgggqzTHETy++GDi1NpDNe0iyqosPm9bitdeNGkJU=",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour * 24),
	}
	testutils.MustExec(t, db.Save(&session), "preparing session")
	expiredSession := database.Session{
		Key:       "Vvgm3eBXfXGEFWERI7faiRJ3DAzJw+7DdT9J1LEyNfI=",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(-time.Hour * 24),
	}
	testutils.MustExec(t, db.Save(&expiredSession), "preparing expired session")
	anonSession := database.Session{
		Key:       "jXBO3AvS/v1ZyzBEvj+tZaZy0hIkW7uYtiFifipGAWo=",
		ExpiresAt: time.Now().Add(time.Hour * 24),
	}
	testutils.MustExec(t, db.Save(&anonSession), "preparing anonymous session")

	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}

	t.Run("valid session with cookie", func(t *testing.T) {
		server := httptest.NewServer(Auth(db, handler, nil))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		testutils.SetReqSessionCookie(t, req, session)
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
	})

	t.Run("expired session with cookie", func(t *testing.T) {
		server := httptest.NewServer(Auth(db, handler, nil))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		testutils.SetReqSessionCookie(t, req, expiredSession)
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusUnauthorized, "status code mismatch")
	})

	t.Run("anonymous session with cookie", func(t *testing.T) {
		server := httptest.NewServer(Auth(db, handler, nil))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		testutils.SetReqSessionCookie(t, req, anonSession)
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusUnauthorized, "status code mismatch")
	})

	t.Run("invalid session with cookie", func(t *testing.T) {
		server := httptest.NewServer(Auth(db, handler, nil))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		req.AddCookie(&http.Cookie{
			Name:     "id",
			Value:    "someInvalidSessionKey=",
			HttpOnly: true,
		})
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusUnauthorized, "status code mismatch")
	})

	t.Run("no session", func(t *testing.T) {
		server := httptest.NewServer(Auth(db, handler, nil))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusUnauthorized, "status code mismatch")
	})

	t.Run("guest redirected to login", func(t *testing.T) {
		server := httptest.NewServer(Auth(db, handler, &AuthParams{RedirectGuestsToLogin: true}))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/libraries/new", "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusFound, "status code mismatch")
		assert.Equal(t, res.Header.Get("Location"), "/login?referrer=%2Flibraries%2Fnew", "location mismatch")
	})
}

func TestSession(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	user := testutils.SetupUserData(db, "alice", "alice@example.com")
	connected := testutils.SetupSession(db, user)
	anon := testutils.SetupGuestSession(db)

	t.Run("connected session", func(t *testing.T) {
		var gotUser *database.User
		var gotSession *database.Session
		handler := func(w http.ResponseWriter, r *http.Request) {
			gotUser = context.User(r.Context())
			gotSession = context.Session(r.Context())
			w.WriteHeader(http.StatusOK)
		}

		server := httptest.NewServer(Session(db, handler))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		testutils.SetReqSessionCookie(t, req, connected)
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
		if gotUser == nil {
			t.Fatal("user should be set in the context")
		}
		assert.Equal(t, gotUser.ID, user.ID, "user id mismatch")
		if gotSession == nil {
			t.Fatal("session should be set in the context")
		}
		assert.Equal(t, gotSession.ID, connected.ID, "session id mismatch")
	})

	t.Run("anonymous session", func(t *testing.T) {
		var gotUser *database.User
		var gotSession *database.Session
		handler := func(w http.ResponseWriter, r *http.Request) {
			gotUser = context.User(r.Context())
			gotSession = context.Session(r.Context())
			w.WriteHeader(http.StatusOK)
		}

		server := httptest.NewServer(Session(db, handler))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		testutils.SetReqSessionCookie(t, req, anon)
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
		if gotUser != nil {
			t.Fatal("user should not be set in the context")
		}
		if gotSession == nil {
			t.Fatal("session should be set in the context")
		}
		assert.Equal(t, gotSession.ID, anon.ID, "session id mismatch")
	})

	t.Run("guest", func(t *testing.T) {
		var gotUser *database.User
		var gotSession *database.Session
		handler := func(w http.ResponseWriter, r *http.Request) {
			gotUser = context.User(r.Context())
			gotSession = context.Session(r.Context())
			w.WriteHeader(http.StatusOK)
		}

		server := httptest.NewServer(Session(db, handler))
		defer server.Close()

		req := testutils.MakeReq(server.URL, "GET", "/", "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
		if gotUser != nil {
			t.Fatal("user should not be set in the context")
		}
		if gotSession != nil {
			t.Fatal("session should not be set in the context")
		}
	})
}
