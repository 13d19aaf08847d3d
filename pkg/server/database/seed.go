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

package database

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm"
)

// SeedBook is a book entry in a seed file
type SeedBook struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	Genre       string `yaml:"genre"`
}

// SeedLibrary is a library entry in a seed file
type SeedLibrary struct {
	Name  string     `yaml:"name"`
	Owner string     `yaml:"owner"`
	Books []SeedBook `yaml:"books"`
}

// SeedUser is a user entry in a seed file
type SeedUser struct {
	Name    string `yaml:"name"`
	Email   string `yaml:"email"`
	Picture string `yaml:"picture"`
}

// SeedData is the parsed content of a seed file
type SeedData struct {
	Genres    []string      `yaml:"genres"`
	Users     []SeedUser    `yaml:"users"`
	Libraries []SeedLibrary `yaml:"libraries"`
}

// ParseSeed parses seed data in the YAML format
func ParseSeed(r io.Reader) (SeedData, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return SeedData{}, errors.Wrap(err, "reading seed data")
	}

	var data SeedData
	if err := yaml.Unmarshal(b, &data); err != nil {
		return SeedData{}, errors.Wrap(err, "parsing seed data")
	}

	return data, nil
}

// Seed populates the database with the given seed data. Genres and users are
// matched by name and email respectively, so running it repeatedly does not
// create duplicate rows.
func Seed(db *gorm.DB, data SeedData) error {
	tx := db.Begin()

	for _, name := range data.Genres {
		var genre Genre
		if err := tx.Where(Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "seeding genre %s", name)
		}
	}

	for _, u := range data.Users {
		var user User
		err := tx.Where("email = ?", u.Email).
			Attrs(User{Name: u.Name, Email: ToNullString(u.Email), Picture: u.Picture}).
			FirstOrCreate(&user).Error
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "seeding user %s", u.Email)
		}
	}

	for _, l := range data.Libraries {
		var owner User
		if err := tx.Where("email = ?", l.Owner).First(&owner).Error; err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "finding owner %s for library %s", l.Owner, l.Name)
		}

		var library Library
		err := tx.Where(Library{Name: l.Name, UserID: owner.ID}).FirstOrCreate(&library).Error
		if err != nil {
			tx.Rollback()
			return errors.Wrapf(err, "seeding library %s", l.Name)
		}

		for _, b := range l.Books {
			var genre Genre
			if err := tx.Where("name = ?", b.Genre).First(&genre).Error; err != nil {
				tx.Rollback()
				return errors.Wrapf(err, "finding genre %s for book %s", b.Genre, b.Title)
			}

			book := Book{
				Title:     b.Title,
				GenreID:   genre.ID,
				LibraryID: library.ID,
				UserID:    owner.ID,
			}
			if b.Author != "" {
				book.Author = ToNullString(b.Author)
			}
			if b.Description != "" {
				book.Description = ToNullString(b.Description)
			}

			var existing Book
			err := tx.Where(Book{Title: b.Title, LibraryID: library.ID}).
				Attrs(book).
				FirstOrCreate(&existing).Error
			if err != nil {
				tx.Rollback()
				return errors.Wrapf(err, "seeding book %s", b.Title)
			}
		}
	}

	return tx.Commit().Error
}
