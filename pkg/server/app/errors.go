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

import "github.com/pkg/errors"

var (
	// ErrNotFound is an error for a nonexistent resource
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is an error for an unauthorized mutation attempt
	ErrUnauthorized = errors.New("You are not authorized to perform this action.")
	// ErrLoginRequired is an error for an action that requires an active login
	ErrLoginRequired = errors.New("Please log in to perform this action.")
	// ErrNotLoggedIn is an error for disconnecting without an active login
	ErrNotLoggedIn = errors.New("You were not logged in.")
	// ErrEmailRequired is an error for a missing email
	ErrEmailRequired = errors.New("Email is required.")
	// ErrLibraryNameRequired is an error for a missing library name
	ErrLibraryNameRequired = errors.New("Library name is required.")
	// ErrBookTitleRequired is an error for a missing book title
	ErrBookTitleRequired = errors.New("Book title is required.")
)
