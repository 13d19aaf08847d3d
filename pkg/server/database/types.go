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
	"database/sql"
	"database/sql/driver"
	"encoding/json"
)

// NullString is a nullable string that serializes to JSON null when invalid
type NullString struct {
	sql.NullString
}

// ToNullString builds a valid NullString with the given value
func ToNullString(s string) NullString {
	return NullString{sql.NullString{String: s, Valid: true}}
}

// MarshalJSON implements json.Marshaler
func (s NullString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(s.String)
}

// UnmarshalJSON implements json.Unmarshaler
func (s *NullString) UnmarshalJSON(data []byte) error {
	var val *string
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	if val == nil {
		s.Valid = false
		s.String = ""
		return nil
	}

	s.Valid = true
	s.String = *val

	return nil
}

// Value implements driver.Valuer
func (s NullString) Value() (driver.Value, error) {
	return s.NullString.Value()
}

// Scan implements sql.Scanner
func (s *NullString) Scan(value interface{}) error {
	return s.NullString.Scan(value)
}
