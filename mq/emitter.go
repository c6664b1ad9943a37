package mq

import (
	"context"
	"encoding/json"
	"log"

	"vitrina/rdx"
)

const channel = "storefront-events"

// Event is a storefront lifecycle notification (order placed, payment
// settled, session opened or closed).
type Event struct {
	EntityType string `json:"entity_type"`
	Action     string `json:"action"`
	EntityID   string `json:"entity_id"`
	UserID     string `json:"user_id,omitempty"`
}

// Emit publishes an event to the Redis channel. Best effort: a missing or
// unreachable broker only logs.
func Emit(ctx context.Context, eventName string, content Event) {
	data, err := json.Marshal(content)
	if err != nil {
		log.Printf("[Emit] Failed to marshal event content: %v", err)
		return
	}

	if rdx.Conn == nil {
		log.Printf("[Emit] No broker configured, dropping %s event", eventName)
		return
	}

	if err := rdx.Conn.Publish(ctx, channel, data).Err(); err != nil {
		log.Printf("[Emit] Failed to publish %s event: %v", eventName, err)
	}
}
