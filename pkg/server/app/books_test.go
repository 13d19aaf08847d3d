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
	"fmt"
	"testing"

	"github.com/libris/libris/pkg/assert"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/testutils"
	"github.com/pkg/errors"
)

func TestCreateBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	a := NewTest()
	a.DB = db

	book, err := a.CreateBook(&owner, library, BookParams{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "A desert planet",
		GenreID:     genre.ID,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating book"))
	}

	var bookRecord database.Book
	testutils.MustExec(t, db.First(&bookRecord, book.ID), "finding book")

	assert.Equal(t, bookRecord.Title, "Dune", "title mismatch")
	assert.Equal(t, bookRecord.Author.String, "Frank Herbert", "author mismatch")
	assert.Equal(t, bookRecord.Description.String, "A desert planet", "description mismatch")
	assert.Equal(t, bookRecord.GenreID, genre.ID, "genre mismatch")
	assert.Equal(t, bookRecord.LibraryID, library.ID, "library mismatch")
	assert.Equal(t, bookRecord.UserID, owner.ID, "book owner should be the library owner")
}

func TestCreateBook_ownerCopiedFromLibrary(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	a := NewTest()
	a.DB = db

	// The acting user record might carry a stale id. The stored owner must
	// come from the library record.
	actor := owner
	book, err := a.CreateBook(&actor, library, BookParams{Title: "Dune", GenreID: genre.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "creating book"))
	}

	assert.Equal(t, book.UserID, library.UserID, "book owner mismatch")
}

func TestCreateBook_nonOwner(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	otherUser := testutils.SetupUserData(db, "bob", "bob@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	a := NewTest()
	a.DB = db

	_, err := a.CreateBook(&otherUser, library, BookParams{Title: "Dune", GenreID: genre.ID})
	assert.Equal(t, errors.Cause(err), ErrUnauthorized, "error mismatch")

	var bookCount int64
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting books")
	assert.Equal(t, bookCount, int64(0), "book count mismatch")
}

func TestCreateBook_emptyTitle(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	a := NewTest()
	a.DB = db

	_, err := a.CreateBook(&owner, library, BookParams{GenreID: genre.ID})
	assert.Equal(t, errors.Cause(err), ErrBookTitleRequired, "error mismatch")
}

func TestCreateBook_missingGenre(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")

	a := NewTest()
	a.DB = db

	_, err := a.CreateBook(&owner, library, BookParams{Title: "Dune", GenreID: 42})
	assert.Equal(t, errors.Cause(err), ErrNotFound, "error mismatch")
}

func TestUpdateBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	a := NewTest()
	a.DB = db

	_, err := a.UpdateBook(&owner, book, BookParams{
		Title:       "Dune Messiah",
		Author:      "Frank Herbert",
		Description: "The sequel",
		GenreID:     genre.ID,
	})
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating book"))
	}

	var bookRecord database.Book
	testutils.MustExec(t, db.First(&bookRecord, book.ID), "finding book")
	assert.Equal(t, bookRecord.Title, "Dune Messiah", "title mismatch")
	assert.Equal(t, bookRecord.Author.String, "Frank Herbert", "author mismatch")
	assert.Equal(t, bookRecord.Description.String, "The sequel", "description mismatch")
}

func TestUpdateBook_emptyFieldsCleared(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")
	testutils.MustExec(t, db.Model(&book).Updates(map[string]interface{}{
		"author":      "Frank Herbert",
		"description": "A desert planet",
	}), "preparing book")

	a := NewTest()
	a.DB = db

	_, err := a.UpdateBook(&owner, book, BookParams{GenreID: genre.ID})
	if err != nil {
		t.Fatal(errors.Wrap(err, "updating book"))
	}

	var bookRecord database.Book
	testutils.MustExec(t, db.First(&bookRecord, book.ID), "finding book")
	assert.Equal(t, bookRecord.Title, "Dune", "empty title should keep the current one")
	assert.Equal(t, bookRecord.Author.Valid, false, "author should be cleared")
	assert.Equal(t, bookRecord.Description.Valid, false, "description should be cleared")
}

func TestUpdateBook_nonOwner(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	otherUser := testutils.SetupUserData(db, "bob", "bob@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	a := NewTest()
	a.DB = db

	_, err := a.UpdateBook(&otherUser, book, BookParams{Title: "Hijacked"})
	assert.Equal(t, errors.Cause(err), ErrUnauthorized, "error mismatch")

	var bookRecord database.Book
	testutils.MustExec(t, db.First(&bookRecord, book.ID), "finding book")
	assert.Equal(t, bookRecord.Title, "Dune", "book title should be unchanged")
}

func TestDeleteBook(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	a := NewTest()
	a.DB = db

	if err := a.DeleteBook(&owner, book); err != nil {
		t.Fatal(errors.Wrap(err, "deleting book"))
	}

	var bookCount int64
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting books")
	assert.Equal(t, bookCount, int64(0), "book count mismatch")
}

func TestDeleteBook_nonOwner(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	otherUser := testutils.SetupUserData(db, "bob", "bob@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	book := testutils.SetupBookData(db, library, genre, "Dune")

	a := NewTest()
	a.DB = db

	err := a.DeleteBook(&otherUser, book)
	assert.Equal(t, errors.Cause(err), ErrUnauthorized, "error mismatch")

	var bookCount int64
	testutils.MustExec(t, db.Model(&database.Book{}).Count(&bookCount), "counting books")
	assert.Equal(t, bookCount, int64(1), "book count mismatch")
}

func TestLatestBooks(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")

	for i := 1; i <= 12; i++ {
		testutils.SetupBookData(db, library, genre, fmt.Sprintf("Book %d", i))
	}

	a := NewTest()
	a.DB = db

	books, err := a.LatestBooks()
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing latest books"))
	}

	assert.Equal(t, len(books), 10, "latest books should be capped")
	assert.Equal(t, books[0].Title, "Book 12", "newest book should come first")
	assert.Equal(t, books[9].Title, "Book 3", "oldest returned book mismatch")
}

func TestListBooksByLibrary(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	otherLibrary := testutils.SetupLibraryData(db, owner, "Uptown Branch")
	genre := testutils.SetupGenreData(db, "Science Fiction")
	testutils.SetupBookData(db, library, genre, "Dune")
	testutils.SetupBookData(db, otherLibrary, genre, "Foundation")

	a := NewTest()
	a.DB = db

	books, err := a.ListBooksByLibrary(library.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing books"))
	}

	assert.Equal(t, len(books), 1, "book count mismatch")
	assert.Equal(t, books[0].Title, "Dune", "book title mismatch")
	assert.Equal(t, books[0].Genre.Name, "Science Fiction", "genre should be preloaded")
}

func TestListBooksByGenre(t *testing.T) {
	db := testutils.InitMemoryDB(t)

	owner := testutils.SetupUserData(db, "alice", "alice@example.com")
	library := testutils.SetupLibraryData(db, owner, "Downtown Branch")
	sf := testutils.SetupGenreData(db, "Science Fiction")
	fantasy := testutils.SetupGenreData(db, "Fantasy")
	testutils.SetupBookData(db, library, sf, "Dune")
	testutils.SetupBookData(db, library, fantasy, "The Hobbit")

	a := NewTest()
	a.DB = db

	books, err := a.ListBooksByGenre(fantasy.ID)
	if err != nil {
		t.Fatal(errors.Wrap(err, "listing books"))
	}

	assert.Equal(t, len(books), 1, "book count mismatch")
	assert.Equal(t, books[0].Title, "The Hobbit", "book title mismatch")
}
