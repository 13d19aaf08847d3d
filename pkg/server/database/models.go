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
	"time"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user. Users are created on the first login with a
// previously unseen email and are never updated or deleted afterwards.
type User struct {
	Model
	Name    string     `json:"name"`
	Email   NullString `gorm:"uniqueIndex" json:"email"`
	Picture string     `json:"picture"`
}

// Genre is a model for a book genre. Genres are reference data populated by
// the seed command.
type Genre struct {
	Model
	Name string `json:"name" gorm:"index"`
}

// Library is a model for a library. A library is owned by exactly one user.
type Library struct {
	Model
	Name   string `json:"name"`
	UserID int    `json:"user_id" gorm:"index"`
	User   User   `json:"-"`
}

// Book is a model for a book. The owner is copied from the library's owner at
// creation time and is not re-derived afterwards.
type Book struct {
	Model
	Title       string     `json:"title"`
	Author      NullString `json:"author"`
	Description NullString `json:"description"`
	GenreID     int        `json:"genre_id" gorm:"index"`
	Genre       Genre      `json:"-"`
	LibraryID   int        `json:"library_id" gorm:"index"`
	Library     Library    `json:"-"`
	UserID      int        `json:"user_id" gorm:"index"`
	User        User       `json:"-"`
}

// Session represents a browser session. A session starts out anonymous with a
// fresh anti-forgery state and gains identity fields once an OAuth connect
// succeeds.
type Session struct {
	Model
	UserID      int    `gorm:"index"`
	Key         string `gorm:"index"`
	State       string
	Provider    string
	Subject     string
	AccessToken string
	Name        string
	Email       string
	Picture     string
	LastUsedAt  time.Time
	ExpiresAt   time.Time
}
