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

package views

import (
	"net/http"
	"time"

	"github.com/libris/libris/pkg/server/database"
)

const (
	// AlertLvlError is an alert level for error
	AlertLvlError = "danger"
	// AlertLvlWarning is an alert level for warning
	AlertLvlWarning = "warning"
	// AlertLvlInfo is an alert level for info
	AlertLvlInfo = "info"
	// AlertLvlSuccess is an alert level for success
	AlertLvlSuccess = "success"

	// AlertMsgGeneric is a generic alert message
	AlertMsgGeneric = "Something went wrong. Please try again."
)

// Alert is a message rendered at the top of a page
type Alert struct {
	Type    string
	Message string
}

// Data is the data passed to a template
type Data struct {
	Alert       *Alert
	AlertInBody bool
	User        *database.User
	Session     *database.Session
	Yield       map[string]interface{}
}

// PutAlert sets the given alert on the data
func (d *Data) PutAlert(a Alert, inBody bool) {
	d.Alert = &a
	d.AlertInBody = inBody
}

const (
	alertCookieLevel   = "alert_level"
	alertCookieMessage = "alert_message"
)

// persistAlert stores the alert in cookies so that it survives a redirect
func persistAlert(w http.ResponseWriter, alert Alert) {
	expiresAt := time.Now().Add(5 * time.Minute)

	level := http.Cookie{
		Name:     alertCookieLevel,
		Value:    alert.Type,
		Expires:  expiresAt,
		HttpOnly: true,
		Path:     "/",
	}
	message := http.Cookie{
		Name:     alertCookieMessage,
		Value:    alert.Message,
		Expires:  expiresAt,
		HttpOnly: true,
		Path:     "/",
	}

	http.SetCookie(w, &level)
	http.SetCookie(w, &message)
}

func getAlert(r *http.Request) *Alert {
	level, err := r.Cookie(alertCookieLevel)
	if err != nil {
		return nil
	}
	message, err := r.Cookie(alertCookieMessage)
	if err != nil {
		return nil
	}

	return &Alert{
		Type:    level.Value,
		Message: message.Value,
	}
}

func clearAlert(w http.ResponseWriter) {
	expiresAt := time.Now()

	level := http.Cookie{
		Name:     alertCookieLevel,
		Value:    "",
		Expires:  expiresAt,
		HttpOnly: true,
		Path:     "/",
	}
	message := http.Cookie{
		Name:     alertCookieMessage,
		Value:    "",
		Expires:  expiresAt,
		HttpOnly: true,
		Path:     "/",
	}

	http.SetCookie(w, &level)
	http.SetCookie(w, &message)
}

// RedirectAlert redirects to the given URL with an alert to be rendered on
// the next page view
func RedirectAlert(w http.ResponseWriter, r *http.Request, urlStr string, code int, alert Alert) {
	persistAlert(w, alert)
	http.Redirect(w, r, urlStr, code)
}
