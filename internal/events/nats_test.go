// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

//go:build nats

package events

import (
	"context"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
)

func TestNATSBusPublishes(t *testing.T) {
	srv, err := StartEmbedded("127.0.0.1", -1)
	if err != nil {
		t.Fatalf("StartEmbedded() error = %v", err)
	}
	t.Cleanup(srv.Shutdown)

	nc, err := natsgo.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(nc.Close)

	sub, err := nc.SubscribeSync("moodreel.feedback.recorded")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	bus, err := NewNATSBus(srv.ClientURL(), "moodreel.")
	if err != nil {
		t.Fatalf("NewNATSBus() error = %v", err)
	}
	t.Cleanup(func() { _ = bus.Close() })

	if err := bus.Publish(context.Background(), TopicFeedbackRecorded, FeedbackRecorded{FeedbackID: "f-1"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	msg, err := sub.NextMsg(5 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg() error = %v", err)
	}
	if len(msg.Data) == 0 {
		t.Error("empty payload")
	}
}
