package service

import (
	"context"
	"math/rand"

	"github.com/jonny/dispatchbot/internal/domain/model"
)

var helloEmojis = []string{"😭", "😄", "😌", "🤓", "😎", "😤", "🤖", "😶‍🌫️", "🌏", "📸", "💿", "👋", "🌊", "✨"}

// Hello answers the "test" command with a greeting and a random emoji.
func Hello(_ context.Context, _ model.Interaction) model.Reply {
	return model.TextReply("hello world " + helloEmojis[rand.Intn(len(helloEmojis))])
}
