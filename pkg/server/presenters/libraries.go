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

// Package presenters provides representations of data that the clients see
package presenters

import (
	"github.com/libris/libris/pkg/server/database"
)

// Library is a library for the client. User is the owner's name.
type Library struct {
	Name string `json:"name"`
	ID   int    `json:"id"`
	User string `json:"user"`
}

// PresentLibrary presents a library
func PresentLibrary(library database.Library) Library {
	return Library{
		Name: library.Name,
		ID:   library.ID,
		User: library.User.Name,
	}
}

// PresentLibraries presents a slice of libraries
func PresentLibraries(libraries []database.Library) []Library {
	ret := []Library{}

	for _, library := range libraries {
		ret = append(ret, PresentLibrary(library))
	}

	return ret
}
