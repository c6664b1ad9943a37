package persist

import (
	"context"
	"encoding/json"
	"log"

	"vitrina/globals"
	"vitrina/models"
)

// CartSubscriber returns a post-mutation hook that writes each cart snapshot
// to its named slot. Failures only log: the in-memory transition already
// happened and persistence is best effort.
func CartSubscriber(slots Slots) func(models.CartSnapshot) {
	return func(snap models.CartSnapshot) {
		raw, err := json.Marshal(snap)
		if err != nil {
			log.Printf("CartSubscriber: marshal failed for %s: %v", snap.UserID, err)
			return
		}
		if err := slots.Set(globals.Ctx, CartSlot(snap.UserID), raw); err != nil {
			log.Printf("CartSubscriber: slot write failed for %s: %v", snap.UserID, err)
		}
	}
}

// RestoreCart reads a user's persisted cart snapshot. ErrNotFound means the
// slot was never written.
func RestoreCart(ctx context.Context, slots Slots, userID string) (models.CartSnapshot, error) {
	raw, err := slots.Get(ctx, CartSlot(userID))
	if err != nil {
		return models.CartSnapshot{}, err
	}
	var snap models.CartSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return models.CartSnapshot{}, err
	}
	snap.UserID = userID
	return snap, nil
}
