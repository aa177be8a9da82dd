package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/trace"
)

// Result is a message produced by a handler: a payload bound for a topic.
type Result struct {
	Topic    string
	Payload  any
	Metadata map[string]string
}

// WrapTransformingTyped adapts a typed transformation handler into a watermill
// HandlerFunc. The incoming payload is unmarshalled into T; each returned
// Result is marshalled into an outgoing message whose subject metadata routes
// it on the bus.
func WrapTransformingTyped[T any](
	handlerName string,
	logger *slog.Logger,
	tracer trace.Tracer,
	handler func(ctx context.Context, payload *T) ([]Result, error),
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx, span := tracer.Start(msg.Context(), handlerName)
		defer span.End()

		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			logger.ErrorContext(ctx, "Failed to unmarshal payload",
				slog.String("handler", handlerName),
				slog.Any("error", err),
			)
			// Malformed payloads are not retryable; drop them.
			return nil, nil
		}

		results, err := handler(ctx, &payload)
		if err != nil {
			span.RecordError(err)
			logger.ErrorContext(ctx, "Handler returned error",
				slog.String("handler", handlerName),
				slog.Any("error", err),
			)
			return nil, fmt.Errorf("%s: %w", handlerName, err)
		}

		out := make([]*message.Message, 0, len(results))
		for _, r := range results {
			body, err := json.Marshal(r.Payload)
			if err != nil {
				return nil, fmt.Errorf("%s: failed to marshal result for %s: %w", handlerName, r.Topic, err)
			}

			outMsg := message.NewMessage(watermill.NewUUID(), body)
			outMsg.SetContext(ctx)
			outMsg.Metadata.Set("subject", r.Topic)
			if cid := msg.Metadata.Get("correlation_id"); cid != "" {
				outMsg.Metadata.Set("correlation_id", cid)
			}
			for k, v := range r.Metadata {
				outMsg.Metadata.Set(k, v)
			}
			out = append(out, outMsg)
		}

		return out, nil
	}
}
