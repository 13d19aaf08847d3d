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
	"github.com/libris/libris/pkg/server/presenters"
	"github.com/libris/libris/pkg/server/views"
)

// NewHome creates a new Home controller.
// It panics if the necessary templates are not parsed.
func NewHome(app *app.App, viewEngine *views.Engine) *Home {
	return &Home{
		IndexView: viewEngine.NewView(app, views.Config{Layout: "base"}, "index"),
		app:       app,
	}
}

// Home is a controller for the home page
type Home struct {
	IndexView *views.View
	app       *app.App
}

// Index handles GET /. It shows the genres and the latest books.
func (h *Home) Index(w http.ResponseWriter, r *http.Request) {
	vd := views.Data{Yield: map[string]interface{}{}}

	genres, err := h.app.ListGenres()
	if err != nil {
		handleHTMLError(w, r, err, "listing genres", h.IndexView, vd)
		return
	}
	books, err := h.app.LatestBooks()
	if err != nil {
		handleHTMLError(w, r, err, "listing latest books", h.IndexView, vd)
		return
	}

	vd.Yield["Genres"] = genres
	vd.Yield["Books"] = books
	h.IndexView.Render(w, r, &vd, http.StatusOK)
}

// JSONIndex handles GET /JSON. It returns the latest books.
func (h *Home) JSONIndex(w http.ResponseWriter, r *http.Request) {
	books, err := h.app.LatestBooks()
	if err != nil {
		handleJSONError(w, err, "listing latest books")
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Books []presenters.Book `json:"books"`
	}{
		Books: presenters.PresentBooks(books),
	})
}
