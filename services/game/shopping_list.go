package game

import (
	"math/rand"
	"strings"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
)

var pantryItems = []string{
	"bread", "milk", "eggs", "butter", "tea", "honey", "apples", "cheese",
	"tomatoes", "rice", "soap", "biscuits", "carrots", "jam", "flour",
	"onions", "coffee", "sugar", "potatoes", "oats",
}

const shoppingListSize = 3

// ShoppingList shows a short list of groceries, then asks which of the
// offered items was on it. The distractors were not.
type ShoppingList struct{}

func (ShoppingList) Type() string { return redis_models.GameShoppingList }

func (ShoppingList) BuildRounds(rng *rand.Rand) []redis_models.GameRound {
	rounds := make([]redis_models.GameRound, 0, game_constants.SHOPPING_LIST_ROUNDS)

	for i := 0; i < game_constants.SHOPPING_LIST_ROUNDS; i++ {
		// The round's list plus enough distractors to fill the options
		picks := pickDistinct(rng, len(pantryItems),
			shoppingListSize+game_constants.OPTIONS_PER_ROUND-1)
		listed := picks[:shoppingListSize]
		distractors := picks[shoppingListSize:]

		names := make([]string, len(listed))
		for j, p := range listed {
			names[j] = pantryItems[p]
		}

		// One remembered item among the distractors
		items := make([]redis_models.RoundItem, 0, game_constants.OPTIONS_PER_ROUND)
		items = append(items, redis_models.RoundItem{Label: pantryItems[listed[rng.Intn(shoppingListSize)]]})
		for _, d := range distractors {
			items = append(items, redis_models.RoundItem{Label: pantryItems[d]})
		}

		answer := shuffleItems(rng, items, 0)
		rounds = append(rounds, redis_models.GameRound{
			Prompt: "Which was on the list? " + strings.Join(names, ", "),
			Items:  items,
			Answer: answer,
		})
	}
	return rounds
}
