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

// Package controllers provides the handlers for the routes
package controllers

import (
	"github.com/libris/libris/pkg/server/app"
	"github.com/libris/libris/pkg/server/views"
)

// Controllers is a group of controllers
type Controllers struct {
	Home      *Home
	Libraries *Libraries
	Books     *Books
	Users     *Users
	Static    *Static
	Health    *Health
}

// New returns a new group of controllers
func New(app *app.App) *Controllers {
	c := Controllers{}

	viewEngine := views.NewDefaultEngine()

	c.Home = NewHome(app, viewEngine)
	c.Libraries = NewLibraries(app, viewEngine)
	c.Books = NewBooks(app, viewEngine)
	c.Users = NewUsers(app, viewEngine)
	c.Static = NewStatic(app, viewEngine)
	c.Health = NewHealth(app)

	return &c
}
