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

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/libris/libris/pkg/assert"
)

func TestStatusWriter(t *testing.T) {
	t.Run("explicit status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sw := statusWriter{ResponseWriter: rec}

		sw.WriteHeader(http.StatusNotFound)

		assert.Equal(t, sw.status, http.StatusNotFound, "recorded status mismatch")
		assert.Equal(t, rec.Code, http.StatusNotFound, "underlying status mismatch")
	})

	t.Run("implicit status on write", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sw := statusWriter{ResponseWriter: rec}

		if _, err := sw.Write([]byte("ok")); err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, sw.status, http.StatusOK, "recorded status mismatch")
	})

	t.Run("status survives subsequent writes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		sw := statusWriter{ResponseWriter: rec}

		sw.WriteHeader(http.StatusForbidden)
		if _, err := sw.Write([]byte("denied")); err != nil {
			t.Fatal(err)
		}

		assert.Equal(t, sw.status, http.StatusForbidden, "recorded status mismatch")
	})
}
