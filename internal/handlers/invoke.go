package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/hello-function/internal/greeting"
	"github.com/sebasr/hello-function/internal/middleware"
)

// Binding names declared in HelloWorld/function.json.
const (
	triggerBinding = "req"
	outputBinding  = "res"
)

// InvokeRequest is the payload the Azure Functions host posts to a custom
// handler for each invocation.
type InvokeRequest struct {
	Data     map[string]json.RawMessage `json:"Data"`
	Metadata map[string]json.RawMessage `json:"Metadata"`
}

// HTTPTriggerData is the "req" binding of an HTTP trigger invocation.
type HTTPTriggerData struct {
	URL     string              `json:"Url"`
	Method  string              `json:"Method"`
	Query   map[string]string   `json:"Query"`
	Headers map[string][]string `json:"Headers"`
	Params  map[string]string   `json:"Params"`
	// Body is a JSON string holding the raw body, or the body itself when
	// the host already decoded it.
	Body json.RawMessage `json:"Body"`
}

// InvokeResponse is returned to the host after an invocation.
type InvokeResponse struct {
	Outputs     map[string]interface{} `json:"Outputs"`
	Logs        []string               `json:"Logs"`
	ReturnValue interface{}            `json:"ReturnValue"`
}

// HTTPOutput is the "res" output binding.
type HTTPOutput struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers"`
}

// InvokeHandler serves the custom handler invocation protocol used when the
// host does not forward raw HTTP requests.
func InvokeHandler(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var invoke InvokeRequest
		if err := c.ShouldBindJSON(&invoke); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid invocation payload",
			})
			return
		}

		var trigger HTTPTriggerData
		if raw, ok := invoke.Data[triggerBinding]; ok {
			if err := json.Unmarshal(raw, &trigger); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": "Invalid HTTP trigger data",
				})
				return
			}
		}

		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"method":     trigger.Method,
		}).Info(ProcessedMessage)

		resp := greeting.Handle(greeting.Request{
			Query: trigger.Query,
			Body:  trigger.rawBody(),
		})

		c.JSON(http.StatusOK, InvokeResponse{
			Outputs: map[string]interface{}{
				outputBinding: HTTPOutput{
					StatusCode: resp.StatusCode,
					Body:       resp.Body,
					Headers:    map[string]string{"Content-Type": contentTypeText},
				},
			},
			Logs: []string{ProcessedMessage},
		})
	}
}

// rawBody recovers the original request body from the trigger data.
func (d HTTPTriggerData) rawBody() []byte {
	if len(d.Body) == 0 || string(d.Body) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(d.Body, &s); err == nil {
		return []byte(s)
	}
	return d.Body
}
