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


package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/campusworks/clubagent/core"
)

// FormatRows renders query results as a list of tuples, e.g. [(2,)] or
// [('Dr. A',), ('Dr. B',)]. The synthesis prompt teaches the model to read
// exactly this shape, sentinel rows included, so the rendering is part of the
// contract with the prompt, not a display nicety.
func FormatRows(rows core.Rows) string {
	if len(rows) == 0 {
		return "[]"
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, row := range rows {
		if i > 0 {
			b.WriteString(", ")
		}
		writeTuple(&b, row)
	}
	b.WriteByte(']')
	return b.String()
}

func writeTuple(b *strings.Builder, row core.Row) {
	b.WriteByte('(')
	for i, value := range row {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, value)
	}
	// Single-element tuples carry a trailing comma to stay unambiguous.
	if len(row) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
}

func writeValue(b *strings.Builder, value any) {
	switch v := value.(type) {
	case nil:
		b.WriteString("None")
	case string:
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(v, "'", `\'`))
		b.WriteByte('\'')
	case bool:
		if v {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
	case int:
		b.WriteString(strconv.Itoa(v))
	case int64:
		b.WriteString(strconv.FormatInt(v, 10))
	case float64:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		fmt.Fprintf(b, "%v", v)
	}
}
