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

// Package permissions implements the ownership checks applied before mutations
package permissions

import (
	"github.com/libris/libris/pkg/server/database"
)

// CanMutateLibrary checks if the given user can edit or delete the given library
func CanMutateLibrary(user *database.User, library database.Library) bool {
	if user == nil {
		return false
	}
	if library.UserID == 0 {
		return false
	}

	return library.UserID == user.ID
}

// CanMutateBook checks if the given user can edit or delete the given book
func CanMutateBook(user *database.User, book database.Book) bool {
	if user == nil {
		return false
	}
	if book.UserID == 0 {
		return false
	}

	return book.UserID == user.ID
}

// CanAddBook checks if the given user can add a book to the given library.
// The library's owner is the gate; the new book's owner is copied from the
// library's owner, not from the acting user.
func CanAddBook(user *database.User, library database.Library) bool {
	return CanMutateLibrary(user, library)
}
