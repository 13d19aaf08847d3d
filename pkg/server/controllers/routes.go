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
	"os"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/assets"
	mw "github.com/libris/libris/pkg/server/middleware"
	"github.com/pkg/errors"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// RouteConfig is the configuration for routes
type RouteConfig struct {
	Controllers *Controllers
	WebRoutes   []Route
	APIRoutes   []Route
}

// NewWebRoutes returns a new web routes
func NewWebRoutes(a *app.App, c *Controllers) []Route {
	redirectGuest := &mw.AuthParams{RedirectGuestsToLogin: true}

	return []Route{
		{"GET", "/", mw.Session(a.DB, c.Home.Index), true},
		{"GET", "/login", mw.Session(a.DB, c.Users.Login), true},
		{"GET", "/disconnect", mw.Session(a.DB, c.Users.Disconnect), true},

		{"GET", "/libraries", mw.Session(a.DB, c.Libraries.Index), true},
		{"GET", "/libraries/new", mw.Auth(a.DB, c.Libraries.New, redirectGuest), true},
		{"POST", "/libraries/new", mw.Auth(a.DB, c.Libraries.Create, nil), true},
		{"GET", "/libraries/{libraryID}", mw.Session(a.DB, c.Libraries.Books), true},
		{"GET", "/libraries/{libraryID}/books", mw.Session(a.DB, c.Libraries.Books), true},
		{"GET", "/libraries/{libraryID}/edit", mw.Auth(a.DB, c.Libraries.Edit, redirectGuest), true},
		{"POST", "/libraries/{libraryID}/edit", mw.Auth(a.DB, c.Libraries.Update, nil), true},
		{"GET", "/libraries/{libraryID}/delete", mw.Auth(a.DB, c.Libraries.ConfirmDelete, redirectGuest), true},
		{"POST", "/libraries/{libraryID}/delete", mw.Auth(a.DB, c.Libraries.Delete, nil), true},

		{"GET", "/libraries/{libraryID}/books/new", mw.Auth(a.DB, c.Books.New, redirectGuest), true},
		{"POST", "/libraries/{libraryID}/books/new", mw.Auth(a.DB, c.Books.Create, nil), true},
		{"GET", "/libraries/{libraryID}/books/{bookID}/edit", mw.Auth(a.DB, c.Books.Edit, redirectGuest), true},
		{"POST", "/libraries/{libraryID}/books/{bookID}/edit", mw.Auth(a.DB, c.Books.Update, nil), true},
		{"GET", "/libraries/{libraryID}/books/{bookID}/delete", mw.Auth(a.DB, c.Books.ConfirmDelete, redirectGuest), true},
		{"POST", "/libraries/{libraryID}/books/{bookID}/delete", mw.Auth(a.DB, c.Books.Delete, nil), true},

		{"GET", "/genre/{genreID}/books", mw.Session(a.DB, c.Books.ByGenre), true},

		{"GET", "/health", c.Health.Index, true},
	}
}

// NewAPIRoutes returns the routes that serve JSON. The connect endpoints live
// here because the login page calls them with XMLHttpRequest; the state
// parameter is their request forgery protection.
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"GET", "/JSON", mw.Session(a.DB, c.Home.JSONIndex), true},
		{"GET", "/libraries/JSON", mw.Session(a.DB, c.Libraries.JSONIndex), true},
		{"GET", "/libraries/{libraryID}/books/JSON", mw.Session(a.DB, c.Libraries.JSONBooks), true},
		{"GET", "/libraries/{libraryID}/books/{bookID}/JSON", mw.Session(a.DB, c.Books.JSONShow), true},
		{"GET", "/genre/{genreID}/books/JSON", mw.Session(a.DB, c.Books.JSONByGenre), true},

		{"POST", "/gconnect", mw.Session(a.DB, c.Users.GoogleConnect), true},
		{"POST", "/fbconnect", mw.Session(a.DB, c.Users.FacebookConnect), true},
		{"GET", "/gdisconnect", mw.Session(a.DB, c.Users.GoogleDisconnect), true},
		{"GET", "/fbdisconnect", mw.Session(a.DB, c.Users.FacebookDisconnect), true},
	}
}

func registerRoutes(router *mux.Router, wrapper mw.Middleware, app *app.App, routes []Route) {
	for _, route := range routes {
		wrappedHandler := wrapper(route.Handler, app, route.RateLimit)

		router.
			Handle(route.Pattern, wrappedHandler).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(app *app.App, rc RouteConfig) (http.Handler, error) {
	if err := app.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)

	// The JSON routes go first so that the literal JSON path segments are not
	// swallowed by the parameterized web routes.
	apiRouter := router.PathPrefix("/").Subrouter()
	webRouter := router.PathPrefix("/").Subrouter()
	registerRoutes(apiRouter, mw.APIMw, app, rc.APIRoutes)
	registerRoutes(webRouter, mw.WebMw, app, rc.WebRoutes)

	if app.CSRFAuthKey != "" && os.Getenv("APP_ENV") != "TEST" {
		csrfMw := csrf.Protect(
			[]byte(app.CSRFAuthKey),
			csrf.Path("/"),
			csrf.Secure(strings.HasPrefix(app.WebURL, "https")),
		)
		webRouter.Use(csrfMw)
	}

	// static
	staticFs, err := assets.GetStaticFS()
	if err != nil {
		return nil, errors.Wrap(err, "getting the filesystem for static files")
	}

	assetBaseURL := app.AssetBaseURL
	if assetBaseURL == "" {
		assetBaseURL = "/static"
	}
	staticHandler := http.StripPrefix(assetBaseURL+"/", http.FileServer(http.FS(staticFs)))
	router.PathPrefix(assetBaseURL + "/").Handler(staticHandler)

	router.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("User-agent: *\nAllow: /"))
	})

	// catch-all
	router.PathPrefix("/").HandlerFunc(rc.Controllers.Static.NotFound)

	return mw.Global(router), nil
}
