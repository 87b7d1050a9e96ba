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
	"regexp"
	"strings"

	"github.com/campusworks/clubagent/store"
)

// checkReadOnly enforces the structured-path write guard: exactly one
// statement, and it must be read-intent (SELECT or WITH). Model-generated SQL
// is untrusted input, so the guard sits here rather than in the prompt.
func checkReadOnly(queryText string) error {
	stmt := strings.TrimSpace(queryText)
	stmt = strings.TrimRight(stmt, ";")
	stmt = strings.TrimSpace(stmt)
	if stmt == "" {
		return store.ErrNotReadOnly
	}

	// Any remaining semicolon means multiple statements were chained.
	if strings.ContainsRune(stmt, ';') {
		return store.ErrNotReadOnly
	}

	fields := strings.Fields(stmt)
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH":
		return nil
	default:
		return store.ErrNotReadOnly
	}
}

var (
	ilikePattern   = regexp.MustCompile(`(?i)\bILIKE\b`)
	extractPattern = regexp.MustCompile(`(?i)\bEXTRACT\s*\(\s*YEAR\s+FROM\s+([^)]+)\)`)
)

// translateDialect rewrites the PostgreSQL-isms the query generator tends to
// produce into their SQLite equivalents. LIKE is already case-insensitive for
// ASCII in SQLite, so ILIKE maps directly.
func translateDialect(queryText string) string {
	queryText = ilikePattern.ReplaceAllString(queryText, "LIKE")
	queryText = extractPattern.ReplaceAllString(queryText, "CAST(strftime('%Y', $1) AS INTEGER)")
	return queryText
}
