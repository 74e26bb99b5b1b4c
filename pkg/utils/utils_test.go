package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
		wantErr  bool
	}{
		{name: "String vazia", input: ""},
		{
			name:     "Somente data",
			input:    "2024-01-15",
			expected: ptr(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)),
		},
		{
			name:     "RFC3339",
			input:    "2024-01-15T10:30:00Z",
			expected: ptr(time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)),
		},
		{name: "Formato inválido", input: "15/01/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got))
		})
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2024, 3, 10, 22, 45, 12, 500, loc)

	got := StartOfDay(in)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), got)
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
	assert.Equal(t, 4.57, RoundWithTwoDecimalPlace(4.5678))
	assert.Equal(t, 3.33, RoundWithTwoDecimalPlace(10.0/3.0))
}

func TestGenerateID(t *testing.T) {
	first, err := GenerateID()
	require.NoError(t, err)
	second, err := GenerateID()
	require.NoError(t, err)

	assert.Len(t, first, 12)
	assert.NotEqual(t, first, second)
	for _, c := range first {
		assert.Contains(t, characters, string(c))
	}
}

func TestNewSnapshotID(t *testing.T) {
	assert.Len(t, NewSnapshotID(), 36)
	assert.NotEqual(t, NewSnapshotID(), NewSnapshotID())
}

func TestPrettyJson(t *testing.T) {
	tests := []struct {
		name     string
		in       any
		expected string
	}{
		{name: "Mapa", in: map[string]int{"a": 1}, expected: "{\n\t\"a\": 1\n}"},
		{name: "Bytes já serializados", in: []byte(`{"b":true}`), expected: "{\n\t\"b\": true\n}"},
		{name: "Struct aninhada", in: struct {
			Tags []string `json:"tags"`
		}{Tags: []string{"go"}}, expected: "{\n\t\"tags\": [\n\t\t\"go\"\n\t]\n}"},
		{name: "Bytes que não são JSON", in: []byte("não é json"), expected: "não é json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			assert.NotPanics(t, func() {
				got = PrettyJson(tt.in)
			})
			assert.Equal(t, tt.expected, got)
		})
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}
