// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge combines a lightweight list record with its heavier detail
// record. Records are handled as raw JSON objects so every field, including
// ones the canonical types do not model, survives the overlay.
package merge

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrUnsupportedDocument is returned by NewIndex when the document is
// neither an array nor an object.
var ErrUnsupportedDocument = errors.New("detail document must be a JSON array or object")

// Objects returns list overlaid with every field present in detail. A field
// that detail sets to null overrides the list value. A missing, empty, or
// non-object detail yields a copy of list. Neither input is modified.
func Objects(list, detail []byte) []byte {
	out := []byte("{}")
	if l := gjson.ParseBytes(list); l.IsObject() {
		out = append([]byte(nil), list...)
	}

	d := gjson.ParseBytes(detail)
	if !d.IsObject() {
		return out
	}

	d.ForEach(func(key, value gjson.Result) bool {
		merged, err := sjson.SetRawBytes(out, escapePath(key.String()), []byte(value.Raw))
		if err == nil {
			out = merged
		}
		return true
	})
	return out
}

// Key normalizes an identifier to its string form so numeric and string
// representations of the same id compare equal: 12, 12.0 and "12" all
// yield "12". Null and non-scalar values yield "".
func Key(v gjson.Result) string {
	switch v.Type {
	case gjson.Number:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case gjson.String:
		return NormalizeKey(v.Str)
	default:
		return ""
	}
}

// NormalizeKey trims s and canonicalizes integral numeric strings such as
// "12.0" to "12".
func NormalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, ".eE") {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return s
}

// NewIndex builds a lookup from normalized id to raw detail object. The
// document may be an array of objects carrying keyField, or an object
// keyed by id. Array elements that are not objects or lack a key are
// skipped.
func NewIndex(doc []byte, keyField string) (map[string]json.RawMessage, error) {
	root := gjson.ParseBytes(doc)
	index := make(map[string]json.RawMessage)

	switch {
	case root.IsArray():
		root.ForEach(func(_, elem gjson.Result) bool {
			if !elem.IsObject() {
				return true
			}
			if k := Key(elem.Get(escapePath(keyField))); k != "" {
				index[k] = json.RawMessage(elem.Raw)
			}
			return true
		})
	case root.IsObject():
		root.ForEach(func(key, elem gjson.Result) bool {
			if !elem.IsObject() {
				return true
			}
			if k := NormalizeKey(key.String()); k != "" {
				index[k] = json.RawMessage(elem.Raw)
			}
			return true
		})
	default:
		return nil, ErrUnsupportedDocument
	}
	return index, nil
}

// Lookup returns the merged object for id: the list object overlaid with
// index's detail entry, or the list object alone when no entry exists.
func Lookup(list []byte, index map[string]json.RawMessage, id string) []byte {
	return Objects(list, index[NormalizeKey(id)])
}

// escapePath escapes gjson/sjson path metacharacters so key is treated as
// a single literal field name.
func escapePath(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':', '!', '=', '<', '>', '%':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
