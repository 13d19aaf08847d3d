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

// Package testutils provides utilities used in tests
package testutils

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/helpers"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SessionCookieName is the name of the cookie that carries the session key
const SessionCookieName = "id"

// InitMemoryDB creates an in-memory SQLite database with the schema initialized
func InitMemoryDB(t *testing.T) *gorm.DB {
	// Use file-based in-memory database with unique UUID per test to avoid sharing
	uuid, err := helpers.GenUUID()
	if err != nil {
		t.Fatalf("failed to generate UUID for test database: %v", err)
	}
	dbName := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid)
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	database.InitSchema(db)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// SetupUserData creates and returns a new user for testing purposes
func SetupUserData(db *gorm.DB, name, email string) database.User {
	user := database.User{
		Name:    name,
		Email:   database.ToNullString(email),
		Picture: "https://example.com/picture.png",
	}

	if err := db.Save(&user).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare user"))
	}

	return user
}

// SetupGenreData creates and returns a new genre for testing purposes
func SetupGenreData(db *gorm.DB, name string) database.Genre {
	genre := database.Genre{Name: name}

	if err := db.Save(&genre).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare genre"))
	}

	return genre
}

// SetupLibraryData creates and returns a new library for testing purposes
func SetupLibraryData(db *gorm.DB, owner database.User, name string) database.Library {
	library := database.Library{Name: name, UserID: owner.ID}

	if err := db.Save(&library).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare library"))
	}

	return library
}

// SetupBookData creates and returns a new book for testing purposes
func SetupBookData(db *gorm.DB, library database.Library, genre database.Genre, title string) database.Book {
	book := database.Book{
		Title:     title,
		GenreID:   genre.ID,
		LibraryID: library.ID,
		UserID:    library.UserID,
	}

	if err := db.Save(&book).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare book"))
	}

	return book
}

func randomKey() string {
	b := make([]byte, 32)
	rand.Read(b)

	return base64.StdEncoding.EncodeToString(b)
}

// SetupSession creates and returns a new connected session for the given user
func SetupSession(db *gorm.DB, user database.User) database.Session {
	session := database.Session{
		Key:         randomKey(),
		State:       randomKey(),
		UserID:      user.ID,
		Provider:    database.ProviderGoogle,
		Subject:     fmt.Sprintf("subject-%d", user.ID),
		AccessToken: "test-access-token",
		Name:        user.Name,
		Email:       user.Email.String,
		Picture:     user.Picture,
		ExpiresAt:   time.Now().Add(time.Hour * 24),
	}
	if err := db.Save(&session).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare session"))
	}

	return session
}

// SetupGuestSession creates and returns a new anonymous session
func SetupGuestSession(db *gorm.DB) database.Session {
	session := database.Session{
		Key:       randomKey(),
		State:     randomKey(),
		ExpiresAt: time.Now().Add(time.Hour * 24),
	}
	if err := db.Save(&session).Error; err != nil {
		panic(errors.Wrap(err, "Failed to prepare session"))
	}

	return session
}

// HTTPDo makes an HTTP request and returns a response
func HTTPDo(t *testing.T, req *http.Request) *http.Response {
	hc := http.Client{
		// Do not follow redirects.
		// e.g. /disconnect redirects to a page but we'd like to test the redirect
		// itself, not what happens after the redirect
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := hc.Do(req)
	if err != nil {
		t.Fatal(errors.Wrap(err, "performing http request"))
	}

	return res
}

// SetReqSessionCookie sets the session cookie in the given request for the given session
func SetReqSessionCookie(t *testing.T, req *http.Request, session database.Session) {
	req.AddCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    session.Key,
		HttpOnly: true,
	})
}

// HTTPAuthDo makes an HTTP request with a session cookie for a connected
// session of the given user
func HTTPAuthDo(t *testing.T, db *gorm.DB, req *http.Request, user database.User) *http.Response {
	session := SetupSession(db, user)
	SetReqSessionCookie(t, req, session)

	return HTTPDo(t, req)
}

// MakeReq makes an HTTP request and returns a response
func MakeReq(endpoint string, method, path, data string) *http.Request {
	u := fmt.Sprintf("%s%s", endpoint, path)

	req, err := http.NewRequest(method, u, strings.NewReader(data))
	if err != nil {
		panic(errors.Wrap(err, "constructing http request"))
	}

	return req
}

// MakeFormReq makes an HTTP request with form data and returns a response
func MakeFormReq(endpoint, method, path string, data url.Values) *http.Request {
	req := MakeReq(endpoint, method, path, data.Encode())
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

// MustExec fails the test if the given database query has error
func MustExec(t *testing.T, db *gorm.DB, message string) {
	if err := db.Error; err != nil {
		t.Fatalf("%s: %s", message, err.Error())
	}
}

// GetCookieByName returns a cookie with the given name
func GetCookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	var ret *http.Cookie

	for i := 0; i < len(cookies); i++ {
		if cookies[i].Name == name {
			ret = cookies[i]
			break
		}
	}

	return ret
}
