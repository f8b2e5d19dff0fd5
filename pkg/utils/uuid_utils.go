package utils

import "github.com/google/uuid"

// GenerateUUIDv7 returns a time-ordered UUID. Primary keys use v7 so index
// inserts stay roughly append-only; v4 is the fallback when the random
// source fails.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
