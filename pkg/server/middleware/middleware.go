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

// Package middleware provides middleware for the handlers
package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/log"
)

// SessionCookieName is the name of the cookie that carries the session key
const SessionCookieName = "id"

// Middleware is a function that wraps a handler with a set of concerns
// shared by a group of routes
type Middleware func(h http.HandlerFunc, app *app.App, rateLimit bool) http.Handler

// WebMw is the middleware for the web routes
func WebMw(h http.HandlerFunc, a *app.App, rateLimit bool) http.Handler {
	return ApplyLimit(h, rateLimit)
}

// APIMw is the middleware for the routes that respond with JSON
func APIMw(h http.HandlerFunc, a *app.App, rateLimit bool) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		h.ServeHTTP(w, r)
	}

	return ApplyLimit(fn, rateLimit)
}

// statusWriter records the status code written to the response
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	return w.ResponseWriter.Write(b)
}

func logging(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := statusWriter{ResponseWriter: w}
		inner.ServeHTTP(&sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		log.WithFields(log.Fields{
			"remoteAddr": lookupIP(r),
			"uri":        r.RequestURI,
			"statusCode": sw.status,
		}).Info(fmt.Sprintf("%s %s", r.Method, r.URL.Path))
	})
}

func recoverPanic(inner http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.WithFields(log.Fields{
					"uri":   r.RequestURI,
					"panic": fmt.Sprintf("%v", rec),
				}).Error("recovered from panic")

				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()

		inner.ServeHTTP(w, r)
	})
}

// Global applies the middleware that all routes use
func Global(h http.Handler) http.Handler {
	return recoverPanic(logging(h))
}

func getSessionKeyFromCookie(r *http.Request) (string, error) {
	c, err := r.Cookie(SessionCookieName)
	if err == http.ErrNoCookie {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return c.Value, nil
}

func getSessionKeyFromAuth(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", nil
	}

	payload := strings.Split(header, " ")
	if len(payload) != 2 || strings.ToLower(payload[0]) != "bearer" {
		return "", nil
	}

	return payload[1], nil
}

// GetCredential extracts the session key from the request. It first looks at
// the session cookie and falls back to the Authorization header.
func GetCredential(r *http.Request) (string, error) {
	key, err := getSessionKeyFromCookie(r)
	if err != nil {
		return "", err
	}
	if key != "" {
		return key, nil
	}

	return getSessionKeyFromAuth(r)
}

// DoError logs the error and responds with the given status code
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	log.ErrorWrap(err, msg)
	http.Error(w, msg, statusCode)
}

// RespondUnauthorized responds with HTTP 401
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="Libris"`)
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}
