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

package views

import (
	"fmt"
	"time"
)

func pluralize(singular string, count int) string {
	if count == 1 {
		return singular
	}

	return singular + "s"
}

var (
	day  = 24 * time.Hour.Milliseconds()
	week = 7 * day
)

func timeDiffText(interval int64, noun string) string {
	return fmt.Sprintf("%d %s", interval, pluralize(noun, int(interval)))
}

// relativeTime humanizes how long ago t happened relative to now
func relativeTime(t, now time.Time) string {
	ts := now.Sub(t).Milliseconds()
	if ts < 0 {
		ts = -ts
	}

	steps := []struct {
		unit int64
		noun string
	}{
		{52 * week, "year"},
		{4 * week, "month"},
		{week, "week"},
		{day, "day"},
		{time.Hour.Milliseconds(), "hour"},
		{time.Minute.Milliseconds(), "minute"},
	}

	for _, step := range steps {
		if interval := ts / step.unit; interval >= 1 {
			return fmt.Sprintf("%s ago", timeDiffText(interval, step.noun))
		}
	}

	return "Just now"
}
