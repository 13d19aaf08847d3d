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

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/log"
	"github.com/libris/libris/pkg/server/middleware"
	"github.com/libris/libris/pkg/server/oauth"
	"github.com/libris/libris/pkg/server/views"
	"github.com/pkg/errors"
)

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)

	return d
}()

// parseForm parses the request's form body into dst
func parseForm(r *http.Request, dst interface{}) error {
	if err := r.ParseForm(); err != nil {
		return errors.Wrap(err, "parsing form")
	}

	if err := formDecoder.Decode(dst, r.PostForm); err != nil {
		return errors.Wrap(err, "decoding form")
	}

	return nil
}

// paramInt reads the named mux variable as an integer. It returns 0 if the
// variable is missing or malformed, which no row id ever is.
func paramInt(r *http.Request, name string) int {
	vars := mux.Vars(r)

	ret, err := strconv.Atoi(vars[name])
	if err != nil {
		return 0
	}

	return ret
}

// statusCodeForErr maps an error to an HTTP status code
func statusCodeForErr(err error) int {
	cause := errors.Cause(err)

	switch cause {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrUnauthorized:
		return http.StatusForbidden
	case app.ErrLoginRequired, app.ErrNotLoggedIn:
		return http.StatusUnauthorized
	case app.ErrEmailRequired, app.ErrLibraryNameRequired, app.ErrBookTitleRequired:
		return http.StatusBadRequest
	}

	var oauthErr *oauth.Error
	if errors.As(err, &oauthErr) {
		return http.StatusUnauthorized
	}

	return http.StatusInternalServerError
}

// messageForErr returns the error message that is safe to show to the client
func messageForErr(err error, statusCode int) string {
	if statusCode == http.StatusInternalServerError {
		return views.AlertMsgGeneric
	}

	var oauthErr *oauth.Error
	if errors.As(err, &oauthErr) {
		return oauthErr.Reason
	}

	return errors.Cause(err).Error()
}

// handleHTMLError logs the error and renders the view with an alert
func handleHTMLError(w http.ResponseWriter, r *http.Request, err error, msg string, v *views.View, d views.Data) {
	statusCode := statusCodeForErr(err)
	if statusCode == http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
	} else {
		log.WithFields(log.Fields{
			"statusCode": statusCode,
		}).Info(errors.Wrap(err, msg).Error())
	}

	d.PutAlert(views.Alert{
		Type:    views.AlertLvlError,
		Message: messageForErr(err, statusCode),
	}, v.AlertInBody)

	v.Render(w, r, &d, statusCode)
}

// handleJSONError logs the error and responds with a JSON error payload
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := statusCodeForErr(err)
	if statusCode == http.StatusInternalServerError {
		log.ErrorWrap(err, msg)
	} else {
		log.WithFields(log.Fields{
			"statusCode": statusCode,
		}).Info(errors.Wrap(err, msg).Error())
	}

	respondJSON(w, statusCode, map[string]string{"error": messageForErr(err, statusCode)})
}

// respondJSON writes the given payload as a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding JSON response")
	}
}

func setSessionCookie(w http.ResponseWriter, key string, expires time.Time) {
	cookie := http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    key,
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
	}

	http.SetCookie(w, &cookie)
}

func unsetSessionCookie(w http.ResponseWriter) {
	expires := time.Now().Add(time.Hour * -24)

	cookie := http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Expires:  expires,
		Path:     "/",
		HttpOnly: true,
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.SetCookie(w, &cookie)
}

func getPathOrReferrer(path string, r *http.Request) string {
	referrer := r.URL.Query().Get("referrer")
	if referrer == "" {
		return path
	}

	return referrer
}
