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


package core

import "strings"

// Row is one tuple returned by a structured query. Column types are
// heterogeneous, exactly as the driver produced them.
type Row []any

// Rows is the ordered result of one structured query execution. It is either
// a plain result set, the single no-results sentinel row, or the single
// error sentinel row. Sentinels keep execution failures inside the data flow
// so the pipeline never has to propagate an exception.
type Rows []Row

// NoResultsMessage is the no-results sentinel text. The synthesizer prompt
// recognizes it and phrases the answer as "information not available".
const NoResultsMessage = "No results found for that query."

// SQLErrorPrefix marks the error sentinel row produced when query execution
// fails. The adapter error text follows verbatim for transparency.
const SQLErrorPrefix = "SQL error: "

// NoResultsRows returns the sentinel result for a query that matched nothing.
func NoResultsRows() Rows {
	return Rows{Row{NoResultsMessage}}
}

// ErrorRows returns the sentinel result for a failed query execution.
func ErrorRows(msg string) Rows {
	return Rows{Row{SQLErrorPrefix + msg}}
}

// sentinelText returns the single string cell if rows is a one-row one-column
// string result, which is the shape of both sentinel forms.
func (r Rows) sentinelText() (string, bool) {
	if len(r) != 1 || len(r[0]) != 1 {
		return "", false
	}
	s, ok := r[0][0].(string)
	return s, ok
}

// IsNoResults reports whether rows is empty or the no-results sentinel.
func (r Rows) IsNoResults() bool {
	if len(r) == 0 {
		return true
	}
	s, ok := r.sentinelText()
	return ok && s == NoResultsMessage
}

// IsError reports whether rows is the error sentinel.
func (r Rows) IsError() bool {
	s, ok := r.sentinelText()
	return ok && strings.HasPrefix(s, SQLErrorPrefix)
}

// ErrorText returns the sentinel error text, or "" if rows is not the error
// sentinel.
func (r Rows) ErrorText() string {
	if !r.IsError() {
		return ""
	}
	s, _ := r.sentinelText()
	return s
}
