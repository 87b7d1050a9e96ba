// Copyright 2025 Campusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckReadOnly(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		allowed bool
	}{
		{"plain select", `SELECT * FROM events`, true},
		{"lowercase select", `select count(*) from events`, true},
		{"cte", `WITH recent AS (SELECT * FROM events) SELECT * FROM recent`, true},
		{"trailing semicolon", `SELECT 1;`, true},
		{"delete", `DELETE FROM events`, false},
		{"update", `UPDATE events SET venue = 'x'`, false},
		{"insert", `INSERT INTO events (event_id) VALUES ('x')`, false},
		{"drop", `DROP TABLE events`, false},
		{"pragma", `PRAGMA journal_mode`, false},
		{"chained statements", `SELECT 1; DELETE FROM events`, false},
		{"only semicolon", `;`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkReadOnly(tt.query)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestTranslateDialect(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			"ilike",
			`SELECT * FROM events WHERE event_domain ILIKE '%robotics%'`,
			`SELECT * FROM events WHERE event_domain LIKE '%robotics%'`,
		},
		{
			"lowercase ilike",
			`select * from events where club_name ilike '%coding%'`,
			`select * from events where club_name LIKE '%coding%'`,
		},
		{
			"extract year",
			`SELECT * FROM events WHERE EXTRACT(YEAR FROM date_of_event) = 2025`,
			`SELECT * FROM events WHERE CAST(strftime('%Y', date_of_event) AS INTEGER) = 2025`,
		},
		{
			"no rewrite needed",
			`SELECT name_of_event FROM events`,
			`SELECT name_of_event FROM events`,
		},
		{
			"ilike inside a string stays (harmless)",
			`SELECT * FROM events WHERE venue LIKE '%hall%'`,
			`SELECT * FROM events WHERE venue LIKE '%hall%'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, translateDialect(tt.query))
		})
	}
}
