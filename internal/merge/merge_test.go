// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func decode(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestObjectsWithoutDetail(t *testing.T) {
	list := []byte(`{"opp_id":"7","title":"Grant","eligibility":"[]"}`)

	for _, detail := range [][]byte{nil, []byte(``), []byte(`null`), []byte(`[1,2]`)} {
		got := Objects(list, detail)
		assert.Equal(t, decode(t, list), decode(t, got))
	}
}

func TestObjectsOverlay(t *testing.T) {
	list := []byte(`{"opp_id":7,"title":"Grant","description":"old","eligibility":[{"applicant_type_name":"Nonprofits"}]}`)
	detail := []byte(`{"opp_id":"7","description":"new text","url":"https://example.org/7"}`)

	got := decode(t, Objects(list, detail))

	assert.Equal(t, "7", got["opp_id"], "detail field overrides list")
	assert.Equal(t, "new text", got["description"])
	assert.Equal(t, "https://example.org/7", got["url"])
	assert.Equal(t, "Grant", got["title"], "list-only field preserved")
	assert.Len(t, got["eligibility"], 1)
}

func TestObjectsExplicitNullOverrides(t *testing.T) {
	list := []byte(`{"id":"a","title":"Professor"}`)
	detail := []byte(`{"title":null}`)

	got := decode(t, Objects(list, detail))
	v, ok := got["title"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestObjectsDoesNotMutateInputs(t *testing.T) {
	list := []byte(`{"id":"a","name":"Ann"}`)
	detail := []byte(`{"name":"Ann Lee","college":"Engineering"}`)
	listCopy := string(list)
	detailCopy := string(detail)

	_ = Objects(list, detail)

	assert.Equal(t, listCopy, string(list))
	assert.Equal(t, detailCopy, string(detail))
}

func TestObjectsKeysWithPathCharacters(t *testing.T) {
	got := decode(t, Objects([]byte(`{"a":1}`), []byte(`{"b.c":2,"d*":3}`)))
	assert.EqualValues(t, 2, got["b.c"])
	assert.EqualValues(t, 3, got["d*"])
	assert.EqualValues(t, 1, got["a"])
}

func TestKey(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`12`, "12"},
		{`12.0`, "12"},
		{`"12"`, "12"},
		{`" 12 "`, "12"},
		{`"12.0"`, "12"},
		{`"A-100"`, "A-100"},
		{`null`, ""},
		{`{}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(gjson.Parse(tt.raw)))
		})
	}
}

func TestNewIndex(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		idx, err := NewIndex([]byte(`[{"opp_id":1,"url":"u1"},{"opp_id":"2","url":"u2"},5,{"url":"nokey"}]`), "opp_id")
		require.NoError(t, err)
		assert.Len(t, idx, 2)
		assert.Contains(t, idx, "1")
		assert.Contains(t, idx, "2")
	})

	t.Run("object", func(t *testing.T) {
		idx, err := NewIndex([]byte(`{"a1":{"name":"Ann"},"b2":{"name":"Ben"},"bad":3}`), "id")
		require.NoError(t, err)
		assert.Len(t, idx, 2)
		assert.JSONEq(t, `{"name":"Ann"}`, string(idx["a1"]))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := NewIndex([]byte(`"text"`), "id")
		assert.ErrorIs(t, err, ErrUnsupportedDocument)
	})
}

func TestLookupToleratesNumericID(t *testing.T) {
	idx, err := NewIndex([]byte(`[{"opp_id":42,"description":"d"}]`), "opp_id")
	require.NoError(t, err)

	got := decode(t, Lookup([]byte(`{"opp_id":"42","title":"T"}`), idx, "42"))
	assert.Equal(t, "d", got["description"])
	assert.Equal(t, "T", got["title"])

	missing := decode(t, Lookup([]byte(`{"opp_id":"43","title":"U"}`), idx, "43"))
	assert.Equal(t, map[string]any{"opp_id": "43", "title": "U"}, missing)
}
