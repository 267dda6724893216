package game

import (
	"math/rand"
	"testing"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"

	"github.com/stretchr/testify/assert"
)

func TestVariantFor(t *testing.T) {
	for _, gameType := range []string{
		redis_models.GameMemoryMatch,
		redis_models.GameTrivia,
		redis_models.GameShoppingList,
	} {
		variant, err := VariantFor(gameType)
		assert.NoError(t, err)
		assert.Equal(t, gameType, variant.Type())
	}

	_, err := VariantFor("chess")
	assert.Error(t, err)
}

func TestBuildRounds(t *testing.T) {
	expected := map[string]int{
		redis_models.GameMemoryMatch:  game_constants.MEMORY_MATCH_ROUNDS,
		redis_models.GameTrivia:       game_constants.TRIVIA_ROUNDS,
		redis_models.GameShoppingList: game_constants.SHOPPING_LIST_ROUNDS,
	}

	rng := rand.New(rand.NewSource(42))
	for gameType, wantRounds := range expected {
		variant, err := VariantFor(gameType)
		assert.NoError(t, err)

		rounds := variant.BuildRounds(rng)
		assert.Len(t, rounds, wantRounds, gameType)

		for i, round := range rounds {
			assert.NotEmpty(t, round.Prompt, "%s round %d", gameType, i)
			assert.Len(t, round.Items, game_constants.OPTIONS_PER_ROUND, "%s round %d", gameType, i)
			assert.GreaterOrEqual(t, round.Answer, 0)
			assert.Less(t, round.Answer, len(round.Items))

			// Options within a round never repeat
			seen := map[string]bool{}
			for _, item := range round.Items {
				assert.False(t, seen[item.Label], "%s round %d repeats %q", gameType, i, item.Label)
				seen[item.Label] = true
			}
		}
	}
}

func TestShuffleItemsTracksAnswer(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		items := []redis_models.RoundItem{
			{Label: "target"}, {Label: "b"}, {Label: "c"}, {Label: "d"},
		}
		answer := shuffleItems(rng, items, 0)
		assert.Equal(t, "target", items[answer].Label)
	}
}
