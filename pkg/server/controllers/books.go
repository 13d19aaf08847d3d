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

	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/context"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/permissions"
	"github.com/libris/libris/pkg/server/presenters"
	"github.com/libris/libris/pkg/server/views"
)

// NewBooks creates a new Books controller.
// It panics if the necessary templates are not parsed.
func NewBooks(app *app.App, viewEngine *views.Engine) *Books {
	return &Books{
		GenreView:  viewEngine.NewView(app, views.Config{Layout: "base"}, "genre_books"),
		NewView:    viewEngine.NewView(app, views.Config{Title: "Add Book", Layout: "base"}, "book_new"),
		EditView:   viewEngine.NewView(app, views.Config{Title: "Edit Book", Layout: "base"}, "book_edit"),
		DeleteView: viewEngine.NewView(app, views.Config{Title: "Delete Book", Layout: "base"}, "book_delete"),
		app:        app,
	}
}

// Books is a controller for the books
type Books struct {
	GenreView  *views.View
	NewView    *views.View
	EditView   *views.View
	DeleteView *views.View
	app        *app.App
}

// ByGenre handles GET /genre/{genreID}/books
func (b *Books) ByGenre(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	genre, err := b.app.GetGenre(paramInt(r, "genreID"))
	if err != nil {
		handleHTMLError(w, r, err, "finding genre", b.GenreView, vd)
		return
	}
	books, err := b.app.ListBooksByGenre(genre.ID)
	if err != nil {
		handleHTMLError(w, r, err, "listing books", b.GenreView, vd)
		return
	}

	vd.Yield["Genre"] = genre
	vd.Yield["Books"] = books
	b.GenreView.Render(w, r, &vd, http.StatusOK)
}

// JSONByGenre handles GET /genre/{genreID}/books/JSON
func (b *Books) JSONByGenre(w http.ResponseWriter, r *http.Request) {
	genre, err := b.app.GetGenre(paramInt(r, "genreID"))
	if err != nil {
		handleJSONError(w, err, "finding genre")
		return
	}
	books, err := b.app.ListBooksByGenre(genre.ID)
	if err != nil {
		handleJSONError(w, err, "listing books")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Books []presenters.Book `json:"books"`
	}{
		Books: presenters.PresentBooks(books),
	})
}

// JSONShow handles GET /libraries/{libraryID}/books/{bookID}/JSON
func (b *Books) JSONShow(w http.ResponseWriter, r *http.Request) {
	book, err := b.app.GetBook(paramInt(r, "bookID"))
	if err != nil {
		handleJSONError(w, err, "finding book")
		return
	}
	if book.LibraryID != paramInt(r, "libraryID") {
		handleJSONError(w, app.ErrNotFound, "finding book")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Book presenters.Book `json:"book"`
	}{
		Book: presenters.PresentBook(book),
	})
}

// BookForm is the form data for a book
type BookForm struct {
	Title       string `schema:"title"`
	Author      string `schema:"author"`
	Description string `schema:"description"`
	GenreID     int    `schema:"genre_id"`
}

func (f BookForm) toParams() app.BookParams {
	return app.BookParams{
		Title:       f.Title,
		Author:      f.Author,
		Description: f.Description,
		GenreID:     f.GenreID,
	}
}

func (b *Books) renderBookForm(w http.ResponseWriter, r *http.Request, v *views.View, vd views.Data) {
	genres, err := b.app.ListGenres()
	if err != nil {
		handleHTMLError(w, r, err, "listing genres", v, vd)
		return
	}

	vd.Yield["Genres"] = genres
	v.Render(w, r, &vd, http.StatusOK)
}

// New handles GET /libraries/{libraryID}/books/new
func (b *Books) New(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := b.app.GetLibrary(paramInt(r, "libraryID"))
	if err != nil {
		handleHTMLError(w, r, err, "finding library", b.NewView, vd)
		return
	}
	if !permissions.CanAddBook(context.User(r.Context()), library) {
		handleHTMLError(w, r, app.ErrUnauthorized, "adding book", b.NewView, vd)
		return
	}

	vd.Yield["Library"] = library
	b.renderBookForm(w, r, b.NewView, vd)
}

// Create handles POST /libraries/{libraryID}/books/new
func (b *Books) Create(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := b.app.GetLibrary(paramInt(r, "libraryID"))
	if err != nil {
		handleHTMLError(w, r, err, "finding library", b.NewView, vd)
		return
	}
	vd.Yield["Library"] = library

	var form BookForm
	if err := parseForm(r, &form); err != nil {
		handleHTMLError(w, r, err, "parsing form", b.NewView, vd)
		return
	}

	book, err := b.app.CreateBook(context.User(r.Context()), library, form.toParams())
	if err != nil {
		handleHTMLError(w, r, err, "creating book", b.NewView, vd)
		return
	}

	views.RedirectAlert(w, r, booksPath(library.ID), http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: book.Title + " has been added.",
	})
}

// loadOwnBook loads the book within the library and verifies that the current
// user may mutate it
func (b *Books) loadOwnBook(r *http.Request) (database.Book, error) {
	book, err := b.app.GetBook(paramInt(r, "bookID"))
	if err != nil {
		return book, err
	}
	if book.LibraryID != paramInt(r, "libraryID") {
		return book, app.ErrNotFound
	}

	user := context.User(r.Context())
	if !permissions.CanMutateBook(user, book) {
		return book, app.ErrUnauthorized
	}

	return book, nil
}

// Edit handles GET /libraries/{libraryID}/books/{bookID}/edit
func (b *Books) Edit(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	book, err := b.loadOwnBook(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading book", b.EditView, vd)
		return
	}

	vd.Yield["Book"] = book
	b.renderBookForm(w, r, b.EditView, vd)
}

// Update handles POST /libraries/{libraryID}/books/{bookID}/edit
func (b *Books) Update(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	book, err := b.loadOwnBook(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading book", b.EditView, vd)
		return
	}
	vd.Yield["Book"] = book

	var form BookForm
	if err := parseForm(r, &form); err != nil {
		handleHTMLError(w, r, err, "parsing form", b.EditView, vd)
		return
	}

	book, err = b.app.UpdateBook(context.User(r.Context()), book, form.toParams())
	if err != nil {
		handleHTMLError(w, r, err, "updating book", b.EditView, vd)
		return
	}

	views.RedirectAlert(w, r, booksPath(book.LibraryID), http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: book.Title + " has been updated.",
	})
}

// ConfirmDelete handles GET /libraries/{libraryID}/books/{bookID}/delete
func (b *Books) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	book, err := b.loadOwnBook(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading book", b.DeleteView, vd)
		return
	}

	vd.Yield["Book"] = book
	b.DeleteView.Render(w, r, &vd, http.StatusOK)
}

// Delete handles POST /libraries/{libraryID}/books/{bookID}/delete
func (b *Books) Delete(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	book, err := b.loadOwnBook(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading book", b.DeleteView, vd)
		return
	}

	if err := b.app.DeleteBook(context.User(r.Context()), book); err != nil {
		vd.Yield["Book"] = book
		handleHTMLError(w, r, err, "deleting book", b.DeleteView, vd)
		return
	}

	views.RedirectAlert(w, r, booksPath(book.LibraryID), http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: book.Title + " has been deleted.",
	})
}

func booksPath(libraryID int) string {
	return fmt.Sprintf("/libraries/%d/books", libraryID)
}
