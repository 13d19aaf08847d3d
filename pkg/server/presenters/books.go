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

package presenters

import (
	"github.com/libris/libris/pkg/server/database"
)

// Book is a book for the client. Genre is the genre's name. Author and
// Description are null when blank. The library and owner ids are not exposed.
type Book struct {
	Title       string              `json:"title"`
	ID          int                 `json:"id"`
	Author      database.NullString `json:"author"`
	Genre       string              `json:"genre"`
	Description database.NullString `json:"description"`
}

// PresentBook presents a book
func PresentBook(book database.Book) Book {
	return Book{
		Title:       book.Title,
		ID:          book.ID,
		Author:      book.Author,
		Genre:       book.Genre.Name,
		Description: book.Description,
	}
}

// PresentBooks presents a slice of books
func PresentBooks(books []database.Book) []Book {
	ret := []Book{}

	for _, book := range books {
		ret = append(ret, PresentBook(book))
	}

	return ret
}
