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

// Package assert provides functions used in tests
package assert

import (
	"net/http"
	"reflect"
	"testing"
)

// Equal fails a test if the actual does not match the expected
func Equal(t *testing.T, a interface{}, b interface{}, message string) {
	if a != b {
		t.Errorf("%s. Actual: %+v. Expected: %+v.", message, a, b)
	}
}

// NotEqual fails a test if the actual matches the expected
func NotEqual(t *testing.T, a interface{}, b interface{}, message string) {
	if a == b {
		t.Errorf("%s. Got: %+v.", message, a)
	}
}

// DeepEqual fails a test if the actual does not deeply equal the expected
func DeepEqual(t *testing.T, a interface{}, b interface{}, message string) {
	if !reflect.DeepEqual(a, b) {
		t.Errorf("%s. Actual: %+v. Expected: %+v.", message, a, b)
	}
}

// StatusCodeEquals fails a test if the response's status code does not match the
// expected
func StatusCodeEquals(t *testing.T, res *http.Response, expected int, message string) {
	if res.StatusCode != expected {
		t.Errorf("status code mismatch. %s: got %v want %v", message, res.StatusCode, expected)
	}
}
