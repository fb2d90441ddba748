package handlers

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/hello-function/internal/greeting"
)

// LambdaHandler adapts the greeting to API Gateway proxy events.
func LambdaHandler(logger logrus.FieldLogger) func(context.Context, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		fields := logrus.Fields{"request_id": event.RequestContext.RequestID}
		if lc, ok := lambdacontext.FromContext(ctx); ok {
			fields["aws_request_id"] = lc.AwsRequestID
		}
		logger.WithFields(fields).Info(ProcessedMessage)

		resp := greeting.Handle(greeting.Request{
			Query: event.QueryStringParameters,
			Body:  eventBody(event),
		})

		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    map[string]string{"Content-Type": contentTypeText},
			Body:       resp.Body,
		}, nil
	}
}

// eventBody returns the decoded event body; undecodable base64 counts as no body.
func eventBody(event events.APIGatewayProxyRequest) []byte {
	if !event.IsBase64Encoded {
		return []byte(event.Body)
	}
	body, err := base64.StdEncoding.DecodeString(event.Body)
	if err != nil {
		return nil
	}
	return body
}
