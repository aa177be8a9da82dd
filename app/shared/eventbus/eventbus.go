package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	wmnats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	nc "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// EventBus is the messaging boundary between the command layer and every
// connected client. Durable subjects ride JetStream streams; ephemeral
// subjects (presence) ride plain NATS.
type EventBus interface {
	Publish(ctx context.Context, subject string, msg *message.Message) error
	PublishEphemeral(ctx context.Context, subject string, msg *message.Message) error
	Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error)
	CreateStream(ctx context.Context, streamName string, subjects []string) error
	Publisher() message.Publisher
	Subscriber() message.Subscriber
	Close() error
}

// eventBus implements the EventBus interface on NATS JetStream.
type eventBus struct {
	publisher      message.Publisher
	subscriber     message.Subscriber
	js             jetstream.JetStream
	natsConn       *nc.Conn
	logger         *slog.Logger
	createdStreams map[string]bool
	streamMutex    sync.Mutex
}

// NewEventBus creates and returns an EventBus with a connection to NATS JetStream.
func NewEventBus(ctx context.Context, natsURL string, logger *slog.Logger) (EventBus, error) {
	natsConn, err := nc.Connect(natsURL, nc.RetryOnFailedConnect(true))
	if err != nil {
		logger.Error("Failed to connect to NATS", slog.Any("error", err))
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(natsConn)
	if err != nil {
		natsConn.Close()
		logger.Error("Failed to initialize JetStream", slog.Any("error", err))
		return nil, fmt.Errorf("failed to initialize JetStream: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)
	marshaller := &wmnats.NATSMarshaler{}

	publisher, err := wmnats.NewPublisher(
		wmnats.PublisherConfig{
			URL:       natsURL,
			Marshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		logger.Error("Failed to create Watermill publisher", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill publisher: %w", err)
	}

	subscriber, err := wmnats.NewSubscriber(
		wmnats.SubscriberConfig{
			URL:         natsURL,
			Unmarshaler: marshaller,
			NatsOptions: []nc.Option{
				nc.RetryOnFailedConnect(true),
			},
		},
		watermillLogger,
	)
	if err != nil {
		natsConn.Close()
		publisher.Close()
		logger.Error("Failed to create Watermill subscriber", slog.Any("error", err))
		return nil, fmt.Errorf("failed to create Watermill subscriber: %w", err)
	}

	return &eventBus{
		publisher:      publisher,
		subscriber:     subscriber,
		js:             js,
		natsConn:       natsConn,
		logger:         logger,
		createdStreams: make(map[string]bool),
	}, nil
}

// Publish writes a message to a JetStream-backed subject. Messages without a
// UUID get one assigned so downstream deduplication has something to key on.
func (eb *eventBus) Publish(ctx context.Context, subject string, msg *message.Message) error {
	if msg.UUID == "" {
		msg.UUID = watermill.NewUUID()
	}

	eb.logger.Debug("Publishing message",
		slog.String("subject", subject),
		slog.String("payload", string(msg.Payload)),
	)

	ack, err := eb.js.Publish(ctx, subject, msg.Payload)
	if err != nil {
		eb.logger.Error("Failed to publish message",
			slog.String("subject", subject),
			slog.Any("error", err),
		)
		return fmt.Errorf("failed to publish message to JetStream: %w", err)
	}

	eb.logger.Info("Message published",
		slog.String("subject", subject),
		slog.Uint64("sequence", ack.Sequence),
	)

	return nil
}

// PublishEphemeral writes a message to plain NATS, bypassing JetStream.
// Presence heartbeats use this: they carry no authority and must not persist.
func (eb *eventBus) PublishEphemeral(ctx context.Context, subject string, msg *message.Message) error {
	if err := eb.natsConn.Publish(subject, msg.Payload); err != nil {
		return fmt.Errorf("failed to publish ephemeral message: %w", err)
	}
	return nil
}

// Subscribe returns a channel of messages for the given subject.
func (eb *eventBus) Subscribe(ctx context.Context, subject string) (<-chan *message.Message, error) {
	eb.logger.Info("Subscribing to subject", slog.String("subject", subject))

	messages, err := eb.subscriber.Subscribe(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to subject %s: %w", subject, err)
	}

	return messages, nil
}

// CreateStream ensures a JetStream stream covering the given subjects exists.
func (eb *eventBus) CreateStream(ctx context.Context, streamName string, subjects []string) error {
	eb.streamMutex.Lock()
	defer eb.streamMutex.Unlock()

	// Check if the stream was already created in this process
	if eb.createdStreams[streamName] {
		return nil
	}

	stream, err := eb.js.Stream(ctx, streamName)
	if err != nil && err != jetstream.ErrStreamNotFound {
		return fmt.Errorf("failed to check if stream exists: %w", err)
	}

	if err == jetstream.ErrStreamNotFound {
		_, err = eb.js.CreateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: subjects,
		})
		if err != nil {
			return fmt.Errorf("failed to create stream: %w", err)
		}
		eb.logger.Info("Stream created", slog.String("stream_name", streamName))
	} else {
		streamInfo, err := stream.Info(ctx)
		if err != nil {
			return fmt.Errorf("failed to get stream info: %w", err)
		}

		existing := make(map[string]bool, len(streamInfo.Config.Subjects))
		for _, s := range streamInfo.Config.Subjects {
			existing[s] = true
		}

		missing := false
		for _, s := range subjects {
			if !existing[s] {
				streamInfo.Config.Subjects = append(streamInfo.Config.Subjects, s)
				missing = true
			}
		}

		if missing {
			_, err = eb.js.UpdateStream(ctx, streamInfo.Config)
			if err != nil {
				return fmt.Errorf("failed to update stream with new subjects: %w", err)
			}
			eb.logger.Info("Stream updated with new subjects", slog.String("stream_name", streamName))
		}
	}

	eb.createdStreams[streamName] = true
	return nil
}

func (eb *eventBus) Publisher() message.Publisher {
	return eb.publisher
}

func (eb *eventBus) Subscriber() message.Subscriber {
	return eb.subscriber
}

// Close closes all NATS and Watermill resources.
func (eb *eventBus) Close() error {
	if eb.publisher != nil {
		if err := eb.publisher.Close(); err != nil {
			eb.logger.Error("Error closing NATS publisher", "error", err)
		}
	}
	if eb.subscriber != nil {
		if err := eb.subscriber.Close(); err != nil {
			eb.logger.Error("Error closing NATS subscriber", "error", err)
		}
	}
	if eb.natsConn != nil {
		eb.natsConn.Close()
	}
	return nil
}
