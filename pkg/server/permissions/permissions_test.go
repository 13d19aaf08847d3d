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

package permissions

import (
	"testing"

	"github.com/libris/libris/pkg/assert"
	"github.com/libris/libris/pkg/server/database"
)

func TestCanMutateLibrary(t *testing.T) {
	owner := database.User{Model: database.Model{ID: 1}}
	other := database.User{Model: database.Model{ID: 2}}
	library := database.Library{Name: "Alex Book Center", UserID: 1}

	assert.Equal(t, CanMutateLibrary(&owner, library), true, "owner should be allowed")
	assert.Equal(t, CanMutateLibrary(&other, library), false, "non-owner should not be allowed")
	assert.Equal(t, CanMutateLibrary(nil, library), false, "nil user should not be allowed")
	assert.Equal(t, CanMutateLibrary(&owner, database.Library{}), false, "unowned library should not be mutable")
}

func TestCanMutateBook(t *testing.T) {
	owner := database.User{Model: database.Model{ID: 1}}
	other := database.User{Model: database.Model{ID: 2}}
	book := database.Book{Title: "Dune", UserID: 1}

	assert.Equal(t, CanMutateBook(&owner, book), true, "owner should be allowed")
	assert.Equal(t, CanMutateBook(&other, book), false, "non-owner should not be allowed")
	assert.Equal(t, CanMutateBook(nil, book), false, "nil user should not be allowed")
}

func TestCanAddBook(t *testing.T) {
	owner := database.User{Model: database.Model{ID: 1}}
	other := database.User{Model: database.Model{ID: 2}}
	library := database.Library{Name: "Alex Book Center", UserID: 1}

	assert.Equal(t, CanAddBook(&owner, library), true, "library owner should be allowed")
	assert.Equal(t, CanAddBook(&other, library), false, "non-owner should not be allowed")
}
