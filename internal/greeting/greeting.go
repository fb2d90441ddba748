// Package greeting resolves an optional caller name and builds the greeting
// returned by the HelloWorld function.
package greeting

import "net/http"

const (
	// DefaultMessage is returned when no name could be resolved.
	DefaultMessage = "Hello! This HTTP triggered function executed successfully. " +
		"Pass a name in the query string (e.g., ?name=Azure) or in the request body for a personalized response."

	personalizedFormat = "Hello, %s! This HTTP triggered function executed successfully."

	nameKey = "name"
)

// Request is the inbound request as seen by the greeting logic.
// Body holds the raw request body; it is only parsed when the query
// string does not carry a name.
type Request struct {
	Query map[string]string
	Body  []byte
}

// Response is the greeting handed back to the hosting platform.
type Response struct {
	Body       string
	StatusCode int
}

// Handle resolves the name (query string first, then JSON body) and returns
// the greeting. It never fails and never modifies req.
func Handle(req Request) Response {
	if name, ok := resolveName(req); ok {
		return Response{Body: Personalized(name), StatusCode: http.StatusOK}
	}
	return Response{Body: DefaultMessage, StatusCode: http.StatusOK}
}

func resolveName(req Request) (string, bool) {
	if name := req.Query[nameKey]; name != "" {
		return name, true
	}

	body := ParseBody(req.Body)
	if !body.OK() {
		return "", false
	}
	return body.Name()
}
