// Package handlers contains the HTTP bindings of the HelloWorld function.
package handlers

import (
	"io"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/hello-function/internal/greeting"
	"github.com/sebasr/hello-function/internal/middleware"
)

// ProcessedMessage is logged once per greeting produced.
const ProcessedMessage = "HTTP trigger function processed a request."

const contentTypeText = "text/plain; charset=utf-8"

// HelloWorldHandler serves HTTP trigger requests forwarded as-is by the host.
// Any method is accepted; the response is always plain text.
func HelloWorldHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.WithField("request_id", c.GetString(middleware.RequestIDKey)).Info(ProcessedMessage)

		req := greeting.Request{
			Query: firstValues(c.Request.URL.Query()),
			Body:  readBody(c),
		}
		resp := greeting.Handle(req)

		c.Data(resp.StatusCode, contentTypeText, []byte(resp.Body))
	}
}

// readBody returns the request body, or nil when it cannot be read. An
// unreadable body is treated like a missing one.
func readBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		_ = c.Error(err)
		return nil
	}
	return body
}

// firstValues flattens a query string, keeping the first value of each key.
func firstValues(values url.Values) map[string]string {
	query := make(map[string]string, len(values))
	for key, v := range values {
		if len(v) > 0 {
			query[key] = v[0]
		}
	}
	return query
}
