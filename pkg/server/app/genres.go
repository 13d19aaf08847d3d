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
	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ListGenres returns all genres
func (a *App) ListGenres() ([]database.Genre, error) {
	genres := []database.Genre{}

	if err := a.DB.Order("id ASC").Find(&genres).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding genres")
	}

	return genres, nil
}

// GetGenre finds a genre by id
func (a *App) GetGenre(id int) (database.Genre, error) {
	var genre database.Genre

	err := a.DB.Where("id = ?", id).First(&genre).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return genre, ErrNotFound
	} else if err != nil {
		return genre, pkgErrors.Wrap(err, "finding genre")
	}

	return genre, nil
}
