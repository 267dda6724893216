package sync

import (
	"testing"

	redis_models "memora/models/redis"

	"github.com/stretchr/testify/assert"
)

func TestWinnerOf(t *testing.T) {
	base := redis_models.Room{
		Code:        "AAAA",
		InitiatorID: "alice",
		JoinerID:    "bob",
		Phase:       redis_models.PhaseFinished,
	}

	tests := []struct {
		name      string
		scores    map[string]int
		forfeitBy string
		want      string
	}{
		{"initiator wins on score", map[string]int{"alice": 5, "bob": 2}, "", "alice"},
		{"joiner wins on score", map[string]int{"alice": 1, "bob": 4}, "", "bob"},
		{"tie records no winner", map[string]int{"alice": 3, "bob": 3}, "", ""},
		{"forfeit beats the score", map[string]int{"alice": 8, "bob": 0}, "alice", "bob"},
		{"joiner forfeit", map[string]int{"alice": 0, "bob": 8}, "bob", "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			room := base
			room.Scores = tt.scores
			room.ForfeitBy = tt.forfeitBy
			assert.Equal(t, tt.want, winnerOf(&room))
		})
	}
}
