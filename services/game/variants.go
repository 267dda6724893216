package game

import (
	"fmt"
	"math/rand"

	redis_models "memora/models/redis"
)

// Variant supplies the game-specific part of a session: how rounds are
// built. Everything else (turn taking, scoring, phase transitions) is the
// same generic machine for every game.
type Variant interface {
	Type() string
	BuildRounds(rng *rand.Rand) []redis_models.GameRound
}

// VariantFor returns the round builder for a game type
func VariantFor(gameType string) (Variant, error) {
	switch gameType {
	case redis_models.GameMemoryMatch:
		return MemoryMatch{}, nil
	case redis_models.GameTrivia:
		return Trivia{}, nil
	case redis_models.GameShoppingList:
		return ShoppingList{}, nil
	default:
		return nil, fmt.Errorf("unknown game type: %s", gameType)
	}
}

// pickDistinct draws n distinct indices from [0, size)
func pickDistinct(rng *rand.Rand, size, n int) []int {
	perm := rng.Perm(size)
	return perm[:n]
}
