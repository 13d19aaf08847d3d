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
	"net/http"

	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/context"
	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/permissions"
	"github.com/libris/libris/pkg/server/presenters"
	"github.com/libris/libris/pkg/server/views"
)

// NewLibraries creates a new Libraries controller.
// It panics if the necessary templates are not parsed.
func NewLibraries(app *app.App, viewEngine *views.Engine) *Libraries {
	return &Libraries{
		IndexView:  viewEngine.NewView(app, views.Config{Title: "Libraries", Layout: "base"}, "libraries"),
		BooksView:  viewEngine.NewView(app, views.Config{Layout: "base"}, "library_books"),
		NewView:    viewEngine.NewView(app, views.Config{Title: "Add Library", Layout: "base"}, "library_new"),
		EditView:   viewEngine.NewView(app, views.Config{Title: "Edit Library", Layout: "base"}, "library_edit"),
		DeleteView: viewEngine.NewView(app, views.Config{Title: "Delete Library", Layout: "base"}, "library_delete"),
		app:        app,
	}
}

// Libraries is a controller for the libraries
type Libraries struct {
	IndexView  *views.View
	BooksView  *views.View
	NewView    *views.View
	EditView   *views.View
	DeleteView *views.View
	app        *app.App
}

// Index handles GET /libraries
func (l *Libraries) Index(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	libraries, err := l.app.ListLibraries()
	if err != nil {
		handleHTMLError(w, r, err, "listing libraries", l.IndexView, vd)
		return
	}

	vd.Yield["Libraries"] = libraries
	l.IndexView.Render(w, r, &vd, http.StatusOK)
}

// JSONIndex handles GET /libraries/JSON
func (l *Libraries) JSONIndex(w http.ResponseWriter, r *http.Request) {
	libraries, err := l.app.ListLibraries()
	if err != nil {
		handleJSONError(w, err, "listing libraries")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Libraries []presenters.Library `json:"libraries"`
	}{
		Libraries: presenters.PresentLibraries(libraries),
	})
}

// Books handles GET /libraries/{libraryID} and GET /libraries/{libraryID}/books
func (l *Libraries) Books(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := l.app.GetLibrary(paramInt(r, "libraryID"))
	if err != nil {
		handleHTMLError(w, r, err, "finding library", l.IndexView, vd)
		return
	}
	books, err := l.app.ListBooksByLibrary(library.ID)
	if err != nil {
		handleHTMLError(w, r, err, "listing books", l.IndexView, vd)
		return
	}

	vd.Yield["Library"] = library
	vd.Yield["Books"] = books
	l.BooksView.Render(w, r, &vd, http.StatusOK)
}

// JSONBooks handles GET /libraries/{libraryID}/books/JSON
func (l *Libraries) JSONBooks(w http.ResponseWriter, r *http.Request) {
	library, err := l.app.GetLibrary(paramInt(r, "libraryID"))
	if err != nil {
		handleJSONError(w, err, "finding library")
		return
	}
	books, err := l.app.ListBooksByLibrary(library.ID)
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

// New handles GET /libraries/new
func (l *Libraries) New(w http.ResponseWriter, r *http.Request) {
	l.NewView.Render(w, r, nil, http.StatusOK)
}

// LibraryForm is the form data for a library
type LibraryForm struct {
	Name string `schema:"name"`
}

// Create handles POST /libraries/new
func (l *Libraries) Create(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	var form LibraryForm
	if err := parseForm(r, &form); err != nil {
		handleHTMLError(w, r, err, "parsing form", l.NewView, vd)
		return
	}

	user := context.User(r.Context())
	if user == nil {
		handleHTMLError(w, r, app.ErrLoginRequired, "creating library", l.NewView, vd)
		return
	}

	library, err := l.app.CreateLibrary(*user, form.Name)
	if err != nil {
		handleHTMLError(w, r, err, "creating library", l.NewView, vd)
		return
	}

	views.RedirectAlert(w, r, "/libraries", http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: library.Name + " has been created.",
	})
}

// loadOwnLibrary loads the library and verifies that the current user may
// mutate it
func (l *Libraries) loadOwnLibrary(r *http.Request) (database.Library, error) {
	library, err := l.app.GetLibrary(paramInt(r, "libraryID"))
	if err != nil {
		return library, err
	}

	user := context.User(r.Context())
	if !permissions.CanMutateLibrary(user, library) {
		return library, app.ErrUnauthorized
	}

	return library, nil
}

// Edit handles GET /libraries/{libraryID}/edit
func (l *Libraries) Edit(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := l.loadOwnLibrary(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading library", l.IndexView, vd)
		return
	}

	vd.Yield["Library"] = library
	l.EditView.Render(w, r, &vd, http.StatusOK)
}

// Update handles POST /libraries/{libraryID}/edit
func (l *Libraries) Update(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := l.loadOwnLibrary(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading library", l.IndexView, vd)
		return
	}

	var form LibraryForm
	if err := parseForm(r, &form); err != nil {
		handleHTMLError(w, r, err, "parsing form", l.EditView, vd)
		return
	}

	library, err = l.app.UpdateLibrary(context.User(r.Context()), library, form.Name)
	if err != nil {
		vd.Yield["Library"] = library
		handleHTMLError(w, r, err, "updating library", l.EditView, vd)
		return
	}

	views.RedirectAlert(w, r, "/libraries", http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: library.Name + " has been updated.",
	})
}

// ConfirmDelete handles GET /libraries/{libraryID}/delete
func (l *Libraries) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := l.loadOwnLibrary(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading library", l.IndexView, vd)
		return
	}

	vd.Yield["Library"] = library
	l.DeleteView.Render(w, r, &vd, http.StatusOK)
}

// Delete handles POST /libraries/{libraryID}/delete
func (l *Libraries) Delete(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	library, err := l.loadOwnLibrary(r)
	if err != nil {
		handleHTMLError(w, r, err, "loading library", l.IndexView, vd)
		return
	}

	if err := l.app.DeleteLibrary(context.User(r.Context()), library); err != nil {
		vd.Yield["Library"] = library
		handleHTMLError(w, r, err, "deleting library", l.DeleteView, vd)
		return
	}

	views.RedirectAlert(w, r, "/libraries", http.StatusFound, views.Alert{
		Type:    views.AlertLvlSuccess,
		Message: library.Name + " has been deleted.",
	})
}
