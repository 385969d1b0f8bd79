// Package pubsub provides a small generic publish/subscribe broker and the
// Bubble Tea glue to consume it from an Update loop.
package pubsub

import (
	"context"
	"time"
)

// EventType tells subscribers how urgent a payload is.
type EventType string

const (
	// NoticeEvent carries routine output such as debug and info log lines.
	NoticeEvent EventType = "notice"
	// ErrorEvent carries something the user should see flagged.
	ErrorEvent EventType = "error"
)

// Event is one published payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber hands out subscription channels.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher publishes payloads and reports how many subscribers took them.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}

var (
	_ Subscriber[string] = (*Broker[string])(nil)
	_ Publisher[string]  = (*Broker[string])(nil)
)
