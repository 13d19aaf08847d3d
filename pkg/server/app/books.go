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
	"errors"

	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/permissions"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// latestBookCount is how many books the latest-books views return
const latestBookCount = 10

// BookParams is the input for creating or updating a book
type BookParams struct {
	Title       string
	Author      string
	Description string
	GenreID     int
}

// GetBook finds a book by id
func (a *App) GetBook(id int) (database.Book, error) {
	var book database.Book

	err := a.DB.Preload("Genre").Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return book, ErrNotFound
	} else if err != nil {
		return book, pkgErrors.Wrap(err, "finding book")
	}

	return book, nil
}

// ListBooksByLibrary returns the books in the given library
func (a *App) ListBooksByLibrary(libraryID int) ([]database.Book, error) {
	books := []database.Book{}

	err := a.DB.Preload("Genre").Where("library_id = ?", libraryID).Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding books")
	}

	return books, nil
}

// ListBooksByGenre returns the books with the given genre
func (a *App) ListBooksByGenre(genreID int) ([]database.Book, error) {
	books := []database.Book{}

	err := a.DB.Preload("Genre").Where("genre_id = ?", genreID).Order("id ASC").Find(&books).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding books")
	}

	return books, nil
}

// LatestBooks returns the most recently created books, newest first. The
// ordering is pinned to descending id.
func (a *App) LatestBooks() ([]database.Book, error) {
	books := []database.Book{}

	err := a.DB.Preload("Genre").Order("id DESC").Limit(latestBookCount).Find(&books).Error
	if err != nil {
		return nil, pkgErrors.Wrap(err, "finding books")
	}

	return books, nil
}

// CreateBook creates a book in the given library. The library's owner, not
// the acting user, is the gate; the new book's owner is copied from the
// library's owner.
func (a *App) CreateBook(user *database.User, library database.Library, params BookParams) (database.Book, error) {
	if !permissions.CanAddBook(user, library) {
		return database.Book{}, ErrUnauthorized
	}
	if params.Title == "" {
		return database.Book{}, ErrBookTitleRequired
	}

	if _, err := a.GetGenre(params.GenreID); err != nil {
		return database.Book{}, err
	}

	book := database.Book{
		Title:     params.Title,
		GenreID:   params.GenreID,
		LibraryID: library.ID,
		UserID:    library.UserID,
	}
	if params.Author != "" {
		book.Author = database.ToNullString(params.Author)
	}
	if params.Description != "" {
		book.Description = database.ToNullString(params.Description)
	}

	tx := a.DB.Begin()
	if err := tx.Create(&book).Error; err != nil {
		tx.Rollback()
		return book, pkgErrors.Wrap(err, "inserting book")
	}
	tx.Commit()

	return book, nil
}

// UpdateBook updates the book. An empty title leaves the current title in
// place.
func (a *App) UpdateBook(user *database.User, book database.Book, params BookParams) (database.Book, error) {
	if !permissions.CanMutateBook(user, book) {
		return book, ErrUnauthorized
	}

	if params.Title != "" {
		book.Title = params.Title
	}
	if params.GenreID != 0 {
		if _, err := a.GetGenre(params.GenreID); err != nil {
			return book, err
		}
		book.GenreID = params.GenreID
	}
	if params.Author != "" {
		book.Author = database.ToNullString(params.Author)
	} else {
		book.Author = database.NullString{}
	}
	if params.Description != "" {
		book.Description = database.ToNullString(params.Description)
	} else {
		book.Description = database.NullString{}
	}

	tx := a.DB.Begin()
	if err := tx.Save(&book).Error; err != nil {
		tx.Rollback()
		return book, pkgErrors.Wrap(err, "updating the book")
	}
	tx.Commit()

	return book, nil
}

// DeleteBook deletes the book
func (a *App) DeleteBook(user *database.User, book database.Book) error {
	if !permissions.CanMutateBook(user, book) {
		return ErrUnauthorized
	}

	tx := a.DB.Begin()
	if err := tx.Delete(&book).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting the book")
	}
	tx.Commit()

	return nil
}
