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
	"testing"
	"testing/fstest"

	"github.com/libris/libris/pkg/assert"
)

func TestValidateMigrationFilename(t *testing.T) {
	testCases := []struct {
		name  string
		valid bool
	}{
		{"001-user-email-unique.sql", true},
		{"002-add-index.sql", true},
		{"1-add-index.sql", false},
		{"abc-add-index.sql", false},
		{"001-.sql", false},
		{"001-add-index.txt", false},
	}

	for _, tc := range testCases {
		err := validateMigrationFilename(tc.name)
		assert.Equal(t, err == nil, tc.valid, tc.name)
	}
}

func TestMigrate(t *testing.T) {
	db := testDB(t)

	fsys := fstest.MapFS{
		"002-add-genre-name-index.sql": &fstest.MapFile{
			Data: []byte("CREATE INDEX IF NOT EXISTS idx_genres_name ON genres(name);"),
		},
		"001-user-email-unique.sql": &fstest.MapFile{
			Data: []byte("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email);"),
		},
	}

	if err := migrate(db, fsys); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	var version int
	if err := db.Raw("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&version).Error; err != nil {
		t.Fatalf("reading version: %v", err)
	}
	assert.Equal(t, version, 2, "version mismatch")

	// Running again should be a no-op
	if err := migrate(db, fsys); err != nil {
		t.Fatalf("migrating second time: %v", err)
	}
}

func TestMigrateEmailUnique(t *testing.T) {
	db := testDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("migrating: %v", err)
	}

	u1 := User{Name: "alice", Email: ToNullString("alice@example.com")}
	if err := db.Save(&u1).Error; err != nil {
		t.Fatalf("saving first user: %v", err)
	}

	u2 := User{Name: "alice again", Email: ToNullString("alice@example.com")}
	err := db.Save(&u2).Error
	assert.NotEqual(t, err, nil, "duplicate email should be rejected")
}
