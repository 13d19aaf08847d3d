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
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/libris/libris/pkg/server/context"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/helpers"
	"github.com/libris/libris/pkg/server/log"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// AuthParams is the params for the authentication middleware
type AuthParams struct {
	RedirectGuestsToLogin bool
}

// AuthWithSession looks up the request's session and its user. ok is false
// for guests and for expired or unknown sessions.
func AuthWithSession(db *gorm.DB, r *http.Request) (database.User, database.Session, bool, error) {
	var user database.User
	var session database.Session

	sessionKey, err := GetCredential(r)
	if err != nil {
		return user, session, false, pkgErrors.Wrap(err, "getting credential")
	}
	if sessionKey == "" {
		return user, session, false, nil
	}

	err = db.Where("key = ?", sessionKey).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, session, false, nil
	} else if err != nil {
		return user, session, false, pkgErrors.Wrap(err, "finding session")
	}

	if session.ExpiresAt.Before(time.Now()) {
		return user, session, false, nil
	}
	if session.UserID == 0 {
		return user, session, false, nil
	}

	err = db.Where("id = ?", session.UserID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, session, false, nil
	} else if err != nil {
		return user, session, false, pkgErrors.Wrap(err, "finding user from session")
	}

	return user, session, true, nil
}

// Session attaches the request's session, and its user if connected, to the
// request context. Guests pass through without an identity.
func Session(db *gorm.DB, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, session, ok, err := AuthWithSession(db, r)
		if err != nil {
			// log the error and continue as a guest
			log.ErrorWrap(err, "authenticating with session")
		}

		ctx := r.Context()
		if session.Key != "" {
			ctx = context.WithSession(ctx, &session)
		}
		if ok {
			ctx = context.WithUser(ctx, &user)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Auth is an authentication middleware. It rejects guests.
func Auth(db *gorm.DB, next http.HandlerFunc, p *AuthParams) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, session, ok, err := AuthWithSession(db, r)
		if err != nil {
			DoError(w, "authenticating with session", err, http.StatusInternalServerError)
			return
		}
		if !ok {
			if p != nil && p.RedirectGuestsToLogin {
				q := url.Values{}
				q.Set("referrer", r.URL.Path)
				path := helpers.GetPath("/login", &q)

				http.Redirect(w, r, path, http.StatusFound)
				return
			}

			RespondUnauthorized(w)
			return
		}

		ctx := context.WithSession(r.Context(), &session)
		ctx = context.WithUser(ctx, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
