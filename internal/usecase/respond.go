package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	oai "github.com/slsfi/arkiva-oai"
	"github.com/slsfi/arkiva-oai/internal/xmlbuild"
)

var tracer = otel.Tracer("usecase")

// fallbackBody is returned if the serializer itself fails, so that
// even that path yields a well-formed protocol document.
var fallbackBody = []byte(`<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<OAI-PMH xmlns="http://www.openarchives.org/OAI/2.0/"><error code="internalError">Response rendering failed</error></OAI-PMH>` + "\n")

// errorReply renders a protocol error document and its HTTP status.
func errorReply(ctx context.Context, baseURL string, verb oai.Verb, protoErr *oai.Error) ([]byte, int) {
	body, err := xmlbuild.ErrorResponse(baseURL, verb, protoErr, time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "error document rendering failed", slog.String("error", err.Error()))
		return fallbackBody, http.StatusInternalServerError
	}
	return body, protoErr.HTTPStatus()
}

// storeFailure logs the underlying store error and converts it into a
// protocol error document. The cause stays in the log and the trace,
// never in the response body.
func storeFailure(ctx context.Context, span trace.Span, baseURL string, verb oai.Verb, protoErr *oai.Error, err error) ([]byte, int) {
	span.RecordError(err)
	slog.ErrorContext(ctx, "store query failed",
		slog.String("verb", string(verb)),
		slog.String("error", err.Error()),
	)
	return errorReply(ctx, baseURL, verb, protoErr)
}

func render(ctx context.Context, resp *xmlbuild.Response) ([]byte, int) {
	body, err := resp.Render()
	if err != nil {
		slog.ErrorContext(ctx, "response rendering failed", slog.String("error", err.Error()))
		return fallbackBody, http.StatusInternalServerError
	}
	return body, http.StatusOK
}
