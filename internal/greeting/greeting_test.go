package greeting

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		wantBody string
	}{
		{
			name:     "name from query string",
			req:      Request{Query: map[string]string{"name": "Azure"}},
			wantBody: "Hello, Azure! This HTTP triggered function executed successfully.",
		},
		{
			name:     "name from JSON body",
			req:      Request{Query: map[string]string{}, Body: []byte(`{"name": "Developer"}`)},
			wantBody: "Hello, Developer! This HTTP triggered function executed successfully.",
		},
		{
			name: "query string takes precedence over body",
			req: Request{
				Query: map[string]string{"name": "Query"},
				Body:  []byte(`{"name": "Body"}`),
			},
			wantBody: "Hello, Query! This HTTP triggered function executed successfully.",
		},
		{
			name:     "no query and no body",
			req:      Request{},
			wantBody: DefaultMessage,
		},
		{
			name:     "malformed body is ignored",
			req:      Request{Body: []byte("not-json-text")},
			wantBody: DefaultMessage,
		},
		{
			name:     "body without name field",
			req:      Request{Body: []byte(`{"other": "value"}`)},
			wantBody: DefaultMessage,
		},
		{
			name:     "empty query name falls back to body",
			req:      Request{Query: map[string]string{"name": ""}, Body: []byte(`{"name": "Body"}`)},
			wantBody: "Hello, Body! This HTTP triggered function executed successfully.",
		},
		{
			name:     "empty query name without body",
			req:      Request{Query: map[string]string{"name": ""}},
			wantBody: DefaultMessage,
		},
		{
			name:     "empty body name",
			req:      Request{Body: []byte(`{"name": ""}`)},
			wantBody: DefaultMessage,
		},
		{
			name:     "name echoed without escaping",
			req:      Request{Query: map[string]string{"name": "<b>O'Brien</b>"}},
			wantBody: "Hello, <b>O'Brien</b>! This HTTP triggered function executed successfully.",
		},
		{
			name:     "query lookup is case sensitive",
			req:      Request{Query: map[string]string{"Name": "Azure"}},
			wantBody: DefaultMessage,
		},
		{
			name:     "JSON array body is ignored",
			req:      Request{Body: []byte(`[{"name": "Developer"}]`)},
			wantBody: DefaultMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := Handle(tt.req)

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.wantBody, resp.Body)
		})
	}
}

func TestHandle_DoesNotModifyRequest(t *testing.T) {
	query := map[string]string{"name": "Azure", "extra": "1"}
	body := []byte(`{"name": "Developer"}`)
	req := Request{Query: query, Body: body}

	Handle(req)

	assert.Equal(t, map[string]string{"name": "Azure", "extra": "1"}, query)
	assert.Equal(t, `{"name": "Developer"}`, string(body))
}

func TestHandle_Idempotent(t *testing.T) {
	reqs := []Request{
		{Query: map[string]string{"name": "Azure"}},
		{Body: []byte(`{"name": "Developer"}`)},
		{Body: []byte("not json")},
		{},
	}

	for _, req := range reqs {
		first := Handle(req)
		second := Handle(req)
		require.Equal(t, first, second)
	}
}

func TestPersonalized(t *testing.T) {
	assert.Equal(t, "Hello, A! This HTTP triggered function executed successfully.", Personalized("A"))
	assert.Equal(t, "Hello, John Doe! This HTTP triggered function executed successfully.", Personalized("John Doe"))
}
