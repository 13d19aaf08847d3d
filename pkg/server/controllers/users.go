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
	"io"
	"net/http"
	"strings"

	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/context"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/log"
	"github.com/libris/libris/pkg/server/oauth"
	"github.com/libris/libris/pkg/server/views"
)

// NewUsers creates a new Users controller.
// It panics if the necessary templates are not parsed.
func NewUsers(app *app.App, viewEngine *views.Engine) *Users {
	return &Users{
		LoginView: viewEngine.NewView(app, views.Config{Title: "Login", Layout: "base", AlertInBody: true}, "login"),
		app:       app,
	}
}

// Users is a controller for sessions and the OAuth connect flows
type Users struct {
	LoginView *views.View
	app       *app.App
}

// Login handles GET /login. It issues a fresh anti-forgery state bound to the
// session, creating an anonymous session first when the browser has none.
func (u *Users) Login(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	session := context.Session(r.Context())
	if session == nil {
		created, err := u.app.CreateSession()
		if err != nil {
			handleHTMLError(w, r, err, "creating session", u.LoginView, vd)
			return
		}

		session = &created
		setSessionCookie(w, session.Key, session.ExpiresAt)
	} else {
		if err := u.app.RefreshState(session); err != nil {
			handleHTMLError(w, r, err, "refreshing state", u.LoginView, vd)
			return
		}
	}

	vd.Yield["State"] = session.State
	vd.Yield["GoogleClientID"] = u.app.Google.ClientID
	vd.Yield["FacebookAppID"] = u.app.Facebook.AppID
	// Guests turned away from a protected page land back on it after login
	vd.Yield["Referrer"] = getPathOrReferrer("/", r)
	u.LoginView.Render(w, r, &vd, http.StatusOK)
}

// connectReply is the payload returned on a successful connect
type connectReply struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
	Message string `json:"message"`
}

// checkState verifies that the state parameter matches the one bound to the
// session. It runs before any call to the provider.
func checkState(session *database.Session, r *http.Request) error {
	state := r.URL.Query().Get("state")
	if session == nil || state == "" || state != session.State {
		return oauth.Reject(nil, oauth.ReasonInvalidState)
	}

	return nil
}

func readConnectBody(r *http.Request) (string, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4096))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(body)), nil
}

// GoogleConnect handles POST /gconnect. The body carries the authorization
// code obtained by the login page.
func (u *Users) GoogleConnect(w http.ResponseWriter, r *http.Request) {
	session := context.Session(r.Context())
	if err := checkState(session, r); err != nil {
		handleJSONError(w, err, "checking state")
		return
	}

	code, err := readConnectBody(r)
	if err != nil {
		handleJSONError(w, err, "reading request body")
		return
	}

	cred, err := u.app.Google.Exchange(r.Context(), code)
	if err != nil {
		handleJSONError(w, err, "exchanging authorization code")
		return
	}

	// Reconnecting the same identity is a no-op
	if session.Provider == database.ProviderGoogle && session.Subject == cred.Subject {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Current user is already connected."})
		return
	}

	profile, err := u.app.Google.FetchProfile(r.Context(), cred)
	if err != nil {
		handleJSONError(w, err, "fetching profile")
		return
	}

	user, err := u.app.ConnectSession(session, database.ProviderGoogle, cred, profile)
	if err != nil {
		handleJSONError(w, err, "connecting session")
		return
	}

	respondJSON(w, http.StatusOK, connectReply{
		Name:    user.Name,
		Email:   user.Email.String,
		Picture: user.Picture,
		Message: "Login successful.",
	})
}

// FacebookConnect handles POST /fbconnect. The body carries the short-lived
// access token obtained by the login page.
func (u *Users) FacebookConnect(w http.ResponseWriter, r *http.Request) {
	session := context.Session(r.Context())
	if err := checkState(session, r); err != nil {
		handleJSONError(w, err, "checking state")
		return
	}

	shortToken, err := readConnectBody(r)
	if err != nil {
		handleJSONError(w, err, "reading request body")
		return
	}

	cred, err := u.app.Facebook.Exchange(r.Context(), shortToken)
	if err != nil {
		handleJSONError(w, err, "exchanging token")
		return
	}

	profile, err := u.app.Facebook.FetchProfile(r.Context(), cred)
	if err != nil {
		handleJSONError(w, err, "fetching profile")
		return
	}

	// Reconnecting the same identity is a no-op. The subject is only known
	// after the profile fetch because the exchange reply carries no user id.
	if session.Provider == database.ProviderFacebook && session.Subject == profile.Subject {
		respondJSON(w, http.StatusOK, map[string]string{"message": "Current user is already connected."})
		return
	}

	user, err := u.app.ConnectSession(session, database.ProviderFacebook, cred, profile)
	if err != nil {
		handleJSONError(w, err, "connecting session")
		return
	}

	respondJSON(w, http.StatusOK, connectReply{
		Name:    user.Name,
		Email:   user.Email.String,
		Picture: user.Picture,
		Message: "Login successful.",
	})
}

// revoke dispatches the token revocation to the session's provider. A
// provider-side failure is reported but never blocks the local teardown.
func (u *Users) revoke(r *http.Request, session *database.Session) {
	var err error
	switch session.Provider {
	case database.ProviderGoogle:
		err = u.app.Google.Revoke(r.Context(), session.AccessToken)
	case database.ProviderFacebook:
		err = u.app.Facebook.Revoke(r.Context(), session.Subject, session.AccessToken)
	}

	if err != nil {
		log.ErrorWrap(err, "revoking token")
	}
}

// GoogleDisconnect handles GET /gdisconnect
func (u *Users) GoogleDisconnect(w http.ResponseWriter, r *http.Request) {
	u.disconnectProvider(w, r, database.ProviderGoogle)
}

// FacebookDisconnect handles GET /fbdisconnect
func (u *Users) FacebookDisconnect(w http.ResponseWriter, r *http.Request) {
	u.disconnectProvider(w, r, database.ProviderFacebook)
}

func (u *Users) disconnectProvider(w http.ResponseWriter, r *http.Request, provider string) {
	session := context.Session(r.Context())
	if session == nil || session.Provider != provider {
		handleJSONError(w, oauth.Reject(nil, oauth.ReasonNotConnected), "disconnecting")
		return
	}

	u.revoke(r, session)

	if err := u.app.DisconnectSession(session); err != nil {
		handleJSONError(w, err, "disconnecting session")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Successfully disconnected."})
}

// Disconnect handles GET /disconnect. It dispatches to the provider that the
// session is connected with and tears the local identity down regardless of
// the provider's reply.
func (u *Users) Disconnect(w http.ResponseWriter, r *http.Request) {
	session := context.Session(r.Context())
	if session == nil || session.Provider == "" {
		views.RedirectAlert(w, r, "/", http.StatusFound, views.Alert{
			Type:    views.AlertLvlInfo,
			Message: app.ErrNotLoggedIn.Error(),
		})
		return
	}

	u.revoke(r, session)

	if err := u.app.DisconnectSession(session); err != nil {
		views.RedirectAlert(w, r, "/", http.StatusFound, views.Alert{
			Type:    views.AlertLvlError,
			Message: views.AlertMsgGeneric,
		})
		return
	}

	unsetSessionCookie(w)

	views.RedirectAlert(w, r, "/", http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: "You have successfully been logged out.",
	})
}
