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
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/libris/libris/pkg/assert"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/testutils"
)

func TestGetBookJSON(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := newTestApp(db)
	server := MustNewServer(t, a)
	defer server.Close()

	alice := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, alice, "Home Shelf")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	t.Run("found", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/libraries/%d/books/%d/JSON", library.ID, book.ID), "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
		assert.Equal(t, readBody(t, res), "{\"book\":{\"title\":\"Dune\",\"id\":1,\"author\":null,\"genre\":\"Science Fiction\",\"description\":null}}\n", "payload mismatch")
	})

	t.Run("wrong library", func(t *testing.T) {
		other := testutils.SetupLibraryData(db, alice, "Office Shelf")

		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/libraries/%d/books/%d/JSON", other.ID, book.ID), "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusNotFound, "status code mismatch")
	})

	t.Run("nonexistent book", func(t *testing.T) {
		req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/libraries/%d/books/999/JSON", library.ID), "")
		res := testutils.HTTPDo(t, req)

		assert.Equal(t, res.StatusCode, http.StatusNotFound, "status code mismatch")
	})
}

func TestGetGenreBooksJSON(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := newTestApp(db)
	server := MustNewServer(t, a)
	defer server.Close()

	alice := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, alice, "Home Shelf")
	scifi := testutils.SetupGenreData(db, "Science Fiction")
	horror := testutils.SetupGenreData(db, "Horror")
	testutils.SetupBookData(db, library, scifi, "Dune")
	testutils.SetupBookData(db, library, horror, "It")

	req := testutils.MakeReq(server.URL, "GET", fmt.Sprintf("/genre/%d/books/JSON", scifi.ID), "")
	res := testutils.HTTPDo(t, req)

	assert.Equal(t, res.StatusCode, http.StatusOK, "status code mismatch")
	assert.Equal(t, readBody(t, res), "{\"books\":[{\"title\":\"Dune\",\"id\":1,\"author\":null,\"genre\":\"Science Fiction\",\"description\":null}]}\n", "payload mismatch")
}

func TestCreateBookHTTP(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := newTestApp(db)
	server := MustNewServer(t, a)
	defer server.Close()

	user := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, user, "Home Shelf")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	data := url.Values{}
	data.Set("title", "Dune")
	data.Set("author", "Frank Herbert")
	data.Set("description", "A desert planet.")
	data.Set("genre_id", fmt.Sprintf("%d", genre.ID))
	req := testutils.MakeFormReq(server.URL, "POST", fmt.Sprintf("/libraries/%d/books/new", library.ID), data)
	res := testutils.HTTPAuthDo(t, db, req, user)

	assert.Equal(t, res.StatusCode, http.StatusFound, "status code mismatch")
	assert.Equal(t, res.Header.Get("Location"), fmt.Sprintf("/libraries/%d/books", library.ID), "location mismatch")

	var book database.Book
	testutils.MustExec(t, db.Where("title = ?", "Dune").First(&book), "finding book")
	assert.Equal(t, book.Author.String, "Frank Herbert", "author mismatch")
	assert.Equal(t, book.GenreID, genre.ID, "genre mismatch")
	assert.Equal(t, book.UserID, user.ID, "owner mismatch")
}

func TestCreateBookHTTP_nonOwner(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := newTestApp(db)
	server := MustNewServer(t, a)
	defer server.Close()

	alice := testutils.SetupUserData(db, "alice", "alice@example.com")
	bob := testutils.SetupUserData(db, "bob", "bob@example.com")
	library := testutils.SetupLibraryData(db, alice, "Home Shelf")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	data := url.Values{}
	data.Set("title", "Dune")
	data.Set("genre_id", fmt.Sprintf("%d", genre.ID))
	req := testutils.MakeFormReq(server.URL, "POST", fmt.Sprintf("/libraries/%d/books/new", library.ID), data)
	res := testutils.HTTPAuthDo(t, db, req, bob)

	assert.Equal(t, res.StatusCode, http.StatusForbidden, "status code mismatch")

	var count int64
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&count), "counting books")
	assert.Equal(t, count, int64(0), "book count mismatch")
}

func TestUpdateBookHTTP(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := newTestApp(db)
	server := MustNewServer(t, a)
	defer server.Close()

	user := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, user, "Home Shelf")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	data := url.Values{}
	data.Set("title", "Dune Messiah")
	data.Set("genre_id", fmt.Sprintf("%d", genre.ID))
	req := testutils.MakeFormReq(server.URL, "POST", fmt.Sprintf("/libraries/%d/books/%d/edit", library.ID, book.ID), data)
	res := testutils.HTTPAuthDo(t, db, req, user)

	assert.Equal(t, res.StatusCode, http.StatusFound, "status code mismatch")

	var bookRecord database.Book
	testutils.MustExec(t, db.First(&bookRecord, book.ID), "finding book")
	assert.Equal(t, bookRecord.Title, "Dune Messiah", "title mismatch")
}

func TestDeleteBookHTTP(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := newTestApp(db)
	server := MustNewServer(t, a)
	defer server.Close()

	user := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, user, "Home Shelf")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	req := testutils.MakeFormReq(server.URL, "POST", fmt.Sprintf("/libraries/%d/books/%d/delete", library.ID, book.ID), url.Values{})
	res := testutils.HTTPAuthDo(t, db, req, user)

	assert.Equal(t, res.StatusCode, http.StatusFound, "status code mismatch")

	var count int64
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&count), "counting books")
	assert.Equal(t, count, int64(0), "book count mismatch")
}
