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

import (
	"errors"

	"github.com/libris/libris/pkg/server/database"
	"github.com/libris/libris/pkg/server/permissions"
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListLibraries returns all libraries with their owners
func (a *App) ListLibraries() ([]database.Library, error) {
	libraries := []database.Library{}

	if err := a.DB.Preload("User").Order("id ASC").Find(&libraries).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding libraries")
	}

	return libraries, nil
}

// GetLibrary finds a library by id
func (a *App) GetLibrary(id int) (database.Library, error) {
	var library database.Library

	err := a.DB.Preload("User").Where("id = ?", id).First(&library).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return library, ErrNotFound
	} else if err != nil {
		return library, pkgErrors.Wrap(err, "finding library")
	}

	return library, nil
}

// CreateLibrary creates a library owned by the given user
func (a *App) CreateLibrary(user database.User, name string) (database.Library, error) {
	if name == "" {
		return database.Library{}, ErrLibraryNameRequired
	}

	library := database.Library{
		Name:   name,
		UserID: user.ID,
	}

	tx := a.DB.Begin()
	if err := tx.Create(&library).Error; err != nil {
		tx.Rollback()
		return library, pkgErrors.Wrap(err, "inserting library")
	}
	tx.Commit()

	return library, nil
}

// UpdateLibrary updates the library's name. Only the owner may update a
// library; an empty name leaves the current name in place.
func (a *App) UpdateLibrary(user *database.User, library database.Library, name string) (database.Library, error) {
	if !permissions.CanMutateLibrary(user, library) {
		return library, ErrUnauthorized
	}

	if name != "" {
		library.Name = name
	}

	tx := a.DB.Begin()
	if err := tx.Save(&library).Error; err != nil {
		tx.Rollback()
		return library, pkgErrors.Wrap(err, "updating the library")
	}
	tx.Commit()

	return library, nil
}

// DeleteLibrary deletes the library and all of its books. The cascade runs in
// the same transaction so a deleted library can never leave orphan books.
func (a *App) DeleteLibrary(user *database.User, library database.Library) error {
	if !permissions.CanMutateLibrary(user, library) {
		return ErrUnauthorized
	}

	tx := a.DB.Begin()

	if err := tx.Where("library_id = ?", library.ID).Delete(&database.Book{}).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting books in the library")
	}

	if err := tx.Delete(&library).Error; err != nil {
		tx.Rollback()
		return pkgErrors.Wrap(err, "deleting the library")
	}

	tx.Commit()

	return nil
}
