// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/moodreel/internal/config"
	"github.com/tomtom215/moodreel/internal/logging"
	"github.com/tomtom215/moodreel/internal/metrics"
	"github.com/tomtom215/moodreel/internal/resilience"
)

var ErrClosed = errors.New("event bus is closed")

// Bus encodes payloads as JSON Watermill messages and hands them to the
// underlying publisher, optionally through a circuit breaker.
type Bus struct {
	pub     message.Publisher
	sub     message.Subscriber
	prefix  string
	breaker *resilience.Breaker

	mu     sync.RWMutex
	closed bool
}

// New builds the bus selected by cfg.Backend. "none" returns Nop.
func New(cfg *config.EventsConfig) (Publisher, func() error, error) {
	switch cfg.Backend {
	case "", "channel":
		b := NewChannelBus(cfg.TopicPrefix)
		return b, b.Close, nil
	case "nats":
		return newNATS(cfg)
	case "none":
		return Nop{}, Nop{}.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// newNATS connects to cfg.NATSURL, or to an embedded server when no URL
// is configured.
func newNATS(cfg *config.EventsConfig) (Publisher, func() error, error) {
	url := cfg.NATSURL
	var embedded *EmbeddedServer
	if url == "" {
		srv, err := StartEmbedded("127.0.0.1", -1)
		if err != nil {
			return nil, nil, err
		}
		embedded, url = srv, srv.ClientURL()
	}

	b, err := NewNATSBus(url, cfg.TopicPrefix)
	if err != nil {
		if embedded != nil {
			embedded.Shutdown()
		}
		return nil, nil, err
	}
	closeFn := func() error {
		err := b.Close()
		if embedded != nil {
			embedded.Shutdown()
		}
		return err
	}
	return b, closeFn, nil
}

// WatermillLogger adapts the global zerolog logger for Watermill.
func WatermillLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logging.NewSlogLogger("events"))
}

// NewChannelBus returns an in-process bus. Subscribers attach with
// Subscribe; messages published with no subscriber are dropped.
func NewChannelBus(prefix string) *Bus {
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, WatermillLogger())
	return &Bus{pub: ch, sub: ch, prefix: prefix}
}

// SetCircuitBreaker routes every publish through b.
func (b *Bus) SetCircuitBreaker(br *resilience.Breaker) {
	b.breaker = br
}

// Publish encodes payload and sends it to prefix+topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", topic, err)
	}
	msg := message.NewMessage(uuid.NewString(), data)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set("correlation_id", id)
	}
	msg.Metadata.Set("topic", topic)

	full := b.prefix + topic
	if b.breaker != nil {
		err = resilience.Do(b.breaker, func() error { return b.pub.Publish(full, msg) })
	} else {
		err = b.pub.Publish(full, msg)
	}
	metrics.RecordEventPublished(topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", full, err)
	}
	return nil
}

// Subscribe returns the message stream for topic. Only buses built with a
// subscriber side (the channel bus) support it.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if b.sub == nil {
		return nil, errors.New("bus has no subscriber side")
	}
	return b.sub.Subscribe(ctx, b.prefix+topic)
}

// Close shuts down the publisher; later publishes return ErrClosed.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	return b.pub.Close()
}

// Decode unmarshals a message payload into out.
func Decode(msg *message.Message, out any) error {
	if err := json.Unmarshal(msg.Payload, out); err != nil {
		return fmt.Errorf("decode event %s: %w", msg.UUID, err)
	}
	return nil
}
