package model

import (
	"fmt"
	"strings"
	"time"
)

// Choice is an object a player can pick in a rock/paper/scissors challenge.
type Choice string

const (
	ChoiceRock     Choice = "rock"
	ChoicePaper    Choice = "paper"
	ChoiceScissors Choice = "scissors"
)

// beats maps each choice to the one it defeats and the verb used to describe it.
var beats = map[Choice]struct {
	target Choice
	verb   string
}{
	ChoiceRock:     {target: ChoiceScissors, verb: "crushes"},
	ChoicePaper:    {target: ChoiceRock, verb: "covers"},
	ChoiceScissors: {target: ChoicePaper, verb: "cuts"},
}

// Choices returns the playable objects in a stable order.
func Choices() []Choice {
	return []Choice{ChoiceRock, ChoicePaper, ChoiceScissors}
}

func ParseChoice(s string) (Choice, error) {
	c := Choice(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := beats[c]; !ok {
		return "", fmt.Errorf("unknown choice %q", s)
	}
	return c, nil
}

// Label is the capitalized display name of the choice.
func (c Choice) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// Game is an open challenge waiting for an opponent.
type Game struct {
	ID           string    `json:"id"`
	ChallengerID string    `json:"challenger_id"`
	Choice       Choice    `json:"choice"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewGame(id, challengerID string, choice Choice) Game {
	return Game{
		ID:           id,
		ChallengerID: challengerID,
		Choice:       choice,
		CreatedAt:    time.Now().UTC(),
	}
}

// Result describes the outcome of two choices from the first player's view.
func Result(p1 Choice, p2 Choice) string {
	if p1 == p2 {
		return "It's a draw"
	}
	if b := beats[p1]; b.target == p2 {
		return fmt.Sprintf("%s %s %s", p1.Label(), b.verb, p2.Label())
	}
	b := beats[p2]
	return fmt.Sprintf("%s %s %s", p2.Label(), b.verb, p1.Label())
}
