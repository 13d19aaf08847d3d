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

// GetUser finds a user by id
func (a *App) GetUser(id int) (database.User, error) {
	var user database.User

	err := a.DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return user, ErrNotFound
	} else if err != nil {
		return user, pkgErrors.Wrap(err, "finding user")
	}

	return user, nil
}

// ResolveOrCreateUser finds the user with the given email, creating one on the
// first sight of the email. It is idempotent across repeated logins with the
// same email.
func (a *App) ResolveOrCreateUser(email, name, picture string) (database.User, error) {
	if email == "" {
		return database.User{}, ErrEmailRequired
	}

	var user database.User
	err := a.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, pkgErrors.Wrap(err, "finding user")
	}

	user = database.User{
		Name:    name,
		Email:   database.ToNullString(email),
		Picture: picture,
	}
	if err := a.DB.Create(&user).Error; err != nil {
		// A concurrent first login with the same email may have won the race
		// against the unique email index. Re-read before giving up.
		var existing database.User
		if err2 := a.DB.Where("email = ?", email).First(&existing).Error; err2 == nil {
			return existing, nil
		}

		return database.User{}, pkgErrors.Wrap(err, "creating user")
	}

	return user, nil
}
