package model

import "github.com/google/uuid"

// generateID returns a random identifier for records created by the bot.
func generateID() string {
	return uuid.NewString()
}
