package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "simple name",
			input: "drawable",
			want:  "drawable",
		},
		{
			name:  "mixed case",
			input: "SceneObject",
			want:  "SceneObject",
		},
		{
			name:  "underscore start",
			input: "_internal",
			want:  "_internal",
		},
		{
			name:  "digits in body",
			input: "handler2",
			want:  "handler2",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  draw  ",
			want:  "draw",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "digit start",
			input:   "2fast",
			wantErr: true,
		},
		{
			name:    "hyphen",
			input:   "my-handler",
			wantErr: true,
		},
		{
			name:    "path separator",
			input:   "a/b",
			wantErr: true,
		},
		{
			name:    "space inside",
			input:   "a b",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a", 65),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			id, err := NewIdentifier(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
			assert.False(t, id.IsEmpty())
		})
	}
}

func TestIdentifier_ZeroValue(t *testing.T) {
	t.Parallel()

	var id Identifier
	assert.True(t, id.IsEmpty())
	assert.Equal(t, "", id.String())
}

func TestIdentifier_Equals(t *testing.T) {
	t.Parallel()

	a := MustNewIdentifier("draw")
	b := MustNewIdentifier("draw")
	c := MustNewIdentifier("update")

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}

func TestIdentifier_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	id := MustNewIdentifier("drawable")
	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"drawable"`, string(data))

	var back Identifier
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, id.Equals(back))

	var bad Identifier
	assert.Error(t, json.Unmarshal([]byte(`"not valid!"`), &bad))
}

func TestMustNewIdentifier_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNewIdentifier("") })
}
