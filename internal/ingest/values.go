// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/research-directory/internal/merge"
	"github.com/pdiddy/research-directory/pkg/types"
)

// present reports whether r carries a usable value. Missing fields, JSON
// null, blank strings, and the literal string "NULL" (any case) are absent.
func present(r gjson.Result) bool {
	if !r.Exists() || r.Type == gjson.Null {
		return false
	}
	if r.Type == gjson.String {
		s := strings.TrimSpace(r.Str)
		return s != "" && !strings.EqualFold(s, "NULL")
	}
	return true
}

// first returns the first present field of obj among names. Callers list
// the canonical name before legacy spellings.
func first(obj gjson.Result, names ...string) gjson.Result {
	for _, n := range names {
		if r := obj.Get(n); present(r) {
			return r
		}
	}
	return gjson.Result{}
}

func str(r gjson.Result) string {
	if !present(r) {
		return ""
	}
	switch r.Type {
	case gjson.String:
		return strings.TrimSpace(r.Str)
	case gjson.Number:
		return merge.Key(r)
	case gjson.True, gjson.False:
		return r.Raw
	default:
		return ""
	}
}

func strs(r gjson.Result) []string {
	var out []string
	if !r.IsArray() {
		return out
	}
	r.ForEach(func(_, v gjson.Result) bool {
		if s := str(v); s != "" {
			out = append(out, s)
		}
		return true
	})
	return out
}

// number parses r as a finite float from a JSON number or numeric string.
func number(r gjson.Result) (float64, bool) {
	if !present(r) {
		return 0, false
	}
	var f float64
	switch r.Type {
	case gjson.Number:
		f = r.Num
	case gjson.String:
		s := strings.ReplaceAll(strings.TrimSpace(r.Str), ",", "")
		s = strings.TrimPrefix(s, "$")
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		f = v
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func floatPtr(r gjson.Result) *float64 {
	f, ok := number(r)
	if !ok {
		return nil
	}
	return &f
}

// count parses r as a non-negative integer, defaulting to 0.
func count(r gjson.Result) int {
	f, ok := number(r)
	if !ok || f < 0 {
		return 0
	}
	return int(f)
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses an ISO-like date or timestamp, including the reduced
// forms "2006-01" and "2006". A space separator is
// accepted in place of "T", and values without a zone are read as UTC.
// It returns nil for absent or unparseable input.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NULL") {
		return nil
	}
	s = strings.Replace(s, " ", "T", 1)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}

func date(r gjson.Result) *time.Time {
	return ParseDate(str(r))
}

// history normalizes a citation breakdown. It accepts an array of
// {year, citations} objects, an object keyed by year, or either of those
// encoded as a JSON string. Entries with an unparseable year are dropped;
// a missing count is 0.
func history(r gjson.Result) types.CitationHistory {
	if !present(r) {
		return nil
	}
	if r.Type == gjson.String {
		if !gjson.Valid(r.Str) {
			return nil
		}
		r = gjson.Parse(r.Str)
	}

	var h types.CitationHistory
	switch {
	case r.IsArray():
		r.ForEach(func(_, e gjson.Result) bool {
			year, ok := yearOf(e.Get("year"))
			if ok {
				h = append(h, types.YearCount{Year: year, Citations: count(e.Get("citations"))})
			}
			return true
		})
	case r.IsObject():
		r.ForEach(func(k, v gjson.Result) bool {
			year, ok := yearOf(k)
			if ok {
				h = append(h, types.YearCount{Year: year, Citations: count(v)})
			}
			return true
		})
	}
	return h
}

// yearOf parses a year from a number or from the leading digits of a
// string, the way parseInt reads "2021" or "2021-01".
func yearOf(r gjson.Result) (int, bool) {
	switch r.Type {
	case gjson.Number:
		return int(r.Num), true
	case gjson.String:
		s := strings.TrimSpace(r.Str)
		end := 0
		for end < len(s) && s[end] >= '0' && s[end] <= '9' {
			end++
		}
		if end == 0 {
			return 0, false
		}
		y, err := strconv.Atoi(s[:end])
		return y, err == nil
	default:
		return 0, false
	}
}

// eligibility returns applicant type names from either a parsed array or a
// JSON-encoded string of the same. Malformed input yields an empty list.
func eligibility(r gjson.Result) []string {
	names := []string{}
	if !present(r) {
		return names
	}
	if r.Type == gjson.String {
		if !gjson.Valid(r.Str) {
			return names
		}
		r = gjson.Parse(r.Str)
	}
	if !r.IsArray() {
		return names
	}
	r.ForEach(func(_, e gjson.Result) bool {
		var name string
		if e.IsObject() {
			name = str(e.Get("applicant_type_name"))
		} else {
			name = str(e)
		}
		if name != "" {
			names = append(names, name)
		}
		return true
	})
	return names
}

// key normalizes an identifier field, treating absent values as "".
func key(r gjson.Result) string {
	if !present(r) {
		return ""
	}
	return merge.Key(r)
}

// ParseHistory normalizes a citation breakdown stored as JSON text, such as
// a database column. Malformed text yields an empty history.
func ParseHistory(s string) types.CitationHistory {
	if !gjson.Valid(s) {
		return nil
	}
	return history(gjson.Parse(s))
}
