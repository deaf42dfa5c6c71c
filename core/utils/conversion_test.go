package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"Int", 42, 42},
		{"Int64", int64(7), 7},
		{"Float", 3.9, 3},
		{"String", " 12 ", 12},
		{"Bytes", []byte("5"), 5},
		{"Number", json.Number("99"), 99},
		{"Garbage", "abc", 0},
		{"Nil", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, `{"a":1}`, ToString(json.RawMessage(`{"a":1}`)))
	assert.Equal(t, `[{"udi":"x"}]`, ToString([]any{map[string]any{"udi": "x"}}))
	assert.Equal(t, "12", ToString(12))
}

func TestParseIDs(t *testing.T) {
	ids, err := ParseIDs("1, 2,,3")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)

	ids, err = ParseIDs("")
	assert.NoError(t, err)
	assert.Empty(t, ids)

	_, err = ParseIDs("1,x")
	assert.ErrorContains(t, err, `invalid id "x"`)

	_, err = ParseIDs("-4")
	assert.Error(t, err)
}
