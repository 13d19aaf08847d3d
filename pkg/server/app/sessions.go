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

package app

import (
	"time"

	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/helpers"
	"github.com/libris/libris/pkg/server/oauth"
	"github.com/pkg/errors"
)

// CreateSession creates a new anonymous session with a fresh anti-forgery
// state
func (a *App) CreateSession() (database.Session, error) {
	key, err := helpers.GenUUID()
	if err != nil {
		return database.Session{}, errors.Wrap(err, "generating key")
	}
	state, err := helpers.GenUUID()
	if err != nil {
		return database.Session{}, errors.Wrap(err, "generating state")
	}

	session := database.Session{
		Key:        key,
		State:      state,
		LastUsedAt: a.Clock.Now(),
		ExpiresAt:  a.Clock.Now().Add(24 * 100 * time.Hour),
	}

	if err := a.DB.Save(&session).Error; err != nil {
		return database.Session{}, errors.Wrap(err, "saving session")
	}

	return session, nil
}

// GetSession finds the session with the given key
func (a *App) GetSession(key string) (database.Session, error) {
	var session database.Session

	err := a.DB.Where("key = ?", key).First(&session).Error
	if err != nil {
		return session, ErrNotFound
	}

	return session, nil
}

// RefreshState issues a new anti-forgery state for the session. A state is
// issued per login page view to bind a provider callback to the session that
// initiated it.
func (a *App) RefreshState(session *database.Session) error {
	state, err := helpers.GenUUID()
	if err != nil {
		return errors.Wrap(err, "generating state")
	}

	session.State = state
	session.LastUsedAt = a.Clock.Now()

	if err := a.DB.Save(session).Error; err != nil {
		return errors.Wrap(err, "saving session")
	}

	return nil
}

// ConnectSession links a verified provider identity to the session. The local
// user is resolved by email, created on first sight.
func (a *App) ConnectSession(session *database.Session, provider string, cred oauth.Credentials, profile oauth.Profile) (database.User, error) {
	user, err := a.ResolveOrCreateUser(profile.Email, profile.Name, profile.Picture)
	if err != nil {
		return database.User{}, errors.Wrap(err, "resolving user")
	}

	session.UserID = user.ID
	session.Provider = provider
	session.Subject = profile.Subject
	session.AccessToken = cred.AccessToken
	session.Name = profile.Name
	session.Email = profile.Email
	session.Picture = profile.Picture
	session.LastUsedAt = a.Clock.Now()

	if err := a.DB.Save(session).Error; err != nil {
		return database.User{}, errors.Wrap(err, "saving session")
	}

	return user, nil
}

// DisconnectSession clears all identity fields from the session. The session
// row itself survives so that the browser keeps a valid anonymous session.
func (a *App) DisconnectSession(session *database.Session) error {
	session.UserID = 0
	session.Provider = ""
	session.Subject = ""
	session.AccessToken = ""
	session.Name = ""
	session.Email = ""
	session.Picture = ""
	session.LastUsedAt = a.Clock.Now()

	if err := a.DB.Save(session).Error; err != nil {
		return errors.Wrap(err, "saving session")
	}

	return nil
}

// DeleteSession deletes the session that matches the given key
func (a *App) DeleteSession(sessionKey string) error {
	if err := a.DB.Where("key = ?", sessionKey).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting the session")
	}

	return nil
}

// DeleteExpiredSessions deletes the sessions that have expired
func (a *App) DeleteExpiredSessions() error {
	if err := a.DB.Where("expires_at < ?", a.Clock.Now()).Delete(&database.Session{}).Error; err != nil {
		return errors.Wrap(err, "deleting expired sessions")
	}

	return nil
}
