package greeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "object", body: `{"name": "Developer"}`},
		{name: "empty object", body: `{}`},
		{name: "object with surrounding whitespace", body: " \n{\"a\": 1}\n "},
		{name: "empty body", body: "", wantErr: true},
		{name: "plain text", body: "not-json-text", wantErr: true},
		{name: "truncated object", body: `{"name": `, wantErr: true},
		{name: "trailing data", body: `{"name": "a"} {"name": "b"}`, wantErr: true},
		{name: "array", body: `["a"]`, wantErr: true},
		{name: "string", body: `"Developer"`, wantErr: true},
		{name: "null", body: `null`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseBody([]byte(tt.body))

			if tt.wantErr {
				assert.Error(t, result.Err)
				assert.False(t, result.OK())
				assert.Nil(t, result.Fields)
				return
			}
			assert.NoError(t, result.Err)
			assert.True(t, result.OK())
			assert.NotNil(t, result.Fields)
		})
	}
}

func TestParseBody_NotObject(t *testing.T) {
	result := ParseBody([]byte(`[1, 2]`))
	assert.ErrorIs(t, result.Err, ErrNotObject)
}

func TestBodyResult_Name(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName string
		wantOK   bool
	}{
		{name: "string", body: `{"name": "Developer"}`, wantName: "Developer", wantOK: true},
		{name: "unicode string", body: `{"name": "Zoë"}`, wantName: "Zoë", wantOK: true},
		{name: "missing", body: `{"other": "x"}`, wantOK: false},
		{name: "null", body: `{"name": null}`, wantOK: false},
		{name: "empty string", body: `{"name": ""}`, wantOK: false},
		{name: "integer", body: `{"name": 42}`, wantName: "42", wantOK: true},
		{name: "float keeps literal text", body: `{"name": 1.50}`, wantName: "1.50", wantOK: true},
		{name: "zero", body: `{"name": 0}`, wantOK: false},
		{name: "zero float", body: `{"name": 0.0}`, wantOK: false},
		{name: "true", body: `{"name": true}`, wantName: "true", wantOK: true},
		{name: "false", body: `{"name": false}`, wantOK: false},
		{name: "empty array", body: `{"name": []}`, wantOK: false},
		{name: "array", body: `{"name": ["a", 1]}`, wantName: `["a",1]`, wantOK: true},
		{name: "empty object", body: `{"name": {}}`, wantOK: false},
		{name: "object", body: `{"name": {"first": "Ada"}}`, wantName: `{"first":"Ada"}`, wantOK: true},
		{name: "object keeps markup unescaped", body: `{"name": {"tag": "<b>&</b>"}}`, wantName: `{"tag":"<b>&</b>"}`, wantOK: true},
		{name: "array keeps markup unescaped", body: `{"name": ["<i>"]}`, wantName: `["<i>"]`, wantOK: true},
		{name: "string keeps markup", body: `{"name": "<script>"}`, wantName: "<script>", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseBody([]byte(tt.body)).Name()

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantName, got)
			}
		})
	}
}

func TestBodyResult_NameOnFailedParse(t *testing.T) {
	_, ok := ParseBody([]byte("garbage")).Name()
	assert.False(t, ok)
}
