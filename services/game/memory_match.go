package game

import (
	"math/rand"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
)

// Symbols used on the memory cards. Familiar everyday objects, matching
// the large-print card deck of the companion app.
var memoryCards = []string{
	"apple", "teapot", "umbrella", "bicycle", "sunflower", "kettle",
	"rocking chair", "wristwatch", "radio", "kite", "lantern", "scarf",
	"birdcage", "teacup", "garden gnome", "postbox",
}

// MemoryMatch shows a card and asks which of the face-down options is its
// pair. One round per shown card.
type MemoryMatch struct{}

func (MemoryMatch) Type() string { return redis_models.GameMemoryMatch }

func (MemoryMatch) BuildRounds(rng *rand.Rand) []redis_models.GameRound {
	rounds := make([]redis_models.GameRound, 0, game_constants.MEMORY_MATCH_ROUNDS)
	picks := pickDistinct(rng, len(memoryCards), game_constants.MEMORY_MATCH_ROUNDS)

	for _, p := range picks {
		target := memoryCards[p]

		// Options: the pair card plus distractors drawn from the rest of
		// the deck
		items := make([]redis_models.RoundItem, 0, game_constants.OPTIONS_PER_ROUND)
		items = append(items, redis_models.RoundItem{Label: target})
		for _, d := range pickDistinct(rng, len(memoryCards), len(memoryCards)) {
			if len(items) == game_constants.OPTIONS_PER_ROUND {
				break
			}
			if memoryCards[d] == target {
				continue
			}
			items = append(items, redis_models.RoundItem{Label: memoryCards[d]})
		}

		answer := shuffleItems(rng, items, 0)
		rounds = append(rounds, redis_models.GameRound{
			Prompt: target,
			Items:  items,
			Answer: answer,
		})
	}
	return rounds
}

// shuffleItems shuffles items in place and returns the new index of the
// element that started at answerIdx
func shuffleItems(rng *rand.Rand, items []redis_models.RoundItem, answerIdx int) int {
	answer := answerIdx
	for i := len(items) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
		switch answer {
		case i:
			answer = j
		case j:
			answer = i
		}
	}
	return answer
}
