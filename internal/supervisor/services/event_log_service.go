// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package services

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/moodreel/internal/events"
)

// Subscriber yields the message stream for a topic.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

// EventLogService writes every domain event to the log, giving an
// operator-visible trail of submissions, generated batches and feedback
// without a separate consumer process.
type EventLogService struct {
	sub    Subscriber
	topics []string
	logger zerolog.Logger
}

// NewEventLogService subscribes to all MoodReel topics.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEventLogService(sub Subscriber, logger zerolog.Logger) *EventLogService {
	return &EventLogService{
		sub: sub,
		topics: []string{
			events.TopicPreferencesSubmitted,
			events.TopicRecommendationsGenerated,
			events.TopicFeedbackRecorded,
		},
		logger: logger.With().Str("service", "event-log").Logger(),
	}
}

// Serve implements suture.Service. A subscribe failure is returned so
// suture retries with backoff.
func (s *EventLogService) Serve(ctx context.Context) error {
	merged := make(chan *message.Message)
	for _, topic := range s.topics {
		ch, err := s.sub.Subscribe(ctx, topic)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go forward(ctx, ch, merged)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-merged:
			s.log(msg)
			msg.Ack()
		}
	}
}

func forward(ctx context.Context, in <-chan *message.Message, out chan<- *message.Message) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}
			select {
			case out <- msg:
			case <-ctx.Done():
				msg.Nack()
				return
			}
		}
	}
}

func (s *EventLogService) log(msg *message.Message) {
	ev := s.logger.Info().
		Str("event_id", msg.UUID).
		Str("topic", msg.Metadata.Get("topic"))
	if id := msg.Metadata.Get("correlation_id"); id != "" {
		ev = ev.Str("correlation_id", id)
	}
	ev.RawJSON("payload", msg.Payload).Msg("Domain event")
}

func (s *EventLogService) String() string { return "event-log" }
