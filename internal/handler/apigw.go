// Where: internal/handler/apigw.go
// What: API Gateway HTTP API adapter for the stop service.
// Why: Keep event decoding out of the stop flow.
package handler

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/poruru/stop-server/internal/taskstop"
	"github.com/sirupsen/logrus"
)

// ServerParam is the only query parameter the endpoint reads.
const ServerParam = "server"

// Stopper runs one stop request.
type Stopper interface {
	Stop(ctx context.Context, serverName string) taskstop.Result
}

// Handler serves stop requests from API Gateway.
type Handler struct {
	stopper Stopper
	log     logrus.FieldLogger
}

func New(stopper Stopper, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{stopper: stopper, log: log}
}

// Handle returns the stop result as the response body. The error is always
// nil so API Gateway renders the result instead of a 502.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (taskstop.Result, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		h.log.WithField("request_id", lc.AwsRequestID).Debug("stop request received")
	}
	server := req.QueryStringParameters[ServerParam]
	return h.stopper.Stop(ctx, server), nil
}
