package game

import (
	"math/rand"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
)

type triviaQuestion struct {
	prompt  string
	options []string // options[0] is the correct one before shuffling
}

var triviaBank = []triviaQuestion{
	{"Which planet is known as the Red Planet?", []string{"Mars", "Venus", "Jupiter", "Mercury"}},
	{"How many days are there in a leap year?", []string{"366", "365", "364", "367"}},
	{"What do bees collect from flowers?", []string{"Nectar", "Water", "Seeds", "Leaves"}},
	{"Which instrument has 88 keys?", []string{"Piano", "Violin", "Trumpet", "Flute"}},
	{"What is the capital of France?", []string{"Paris", "Rome", "Madrid", "Lisbon"}},
	{"Which season comes after summer?", []string{"Autumn", "Winter", "Spring", "Monsoon"}},
	{"How many sides does a hexagon have?", []string{"Six", "Five", "Seven", "Eight"}},
	{"What is frozen water called?", []string{"Ice", "Steam", "Dew", "Frost"}},
	{"Which bird is known for delivering messages?", []string{"Pigeon", "Sparrow", "Crow", "Owl"}},
	{"What color do you get mixing blue and yellow?", []string{"Green", "Purple", "Orange", "Brown"}},
	{"Which meal is eaten in the morning?", []string{"Breakfast", "Dinner", "Supper", "Tea"}},
	{"How many legs does a spider have?", []string{"Eight", "Six", "Ten", "Four"}},
}

// Trivia asks multiple-choice general knowledge questions, one per round
type Trivia struct{}

func (Trivia) Type() string { return redis_models.GameTrivia }

func (Trivia) BuildRounds(rng *rand.Rand) []redis_models.GameRound {
	n := game_constants.TRIVIA_ROUNDS
	if n > len(triviaBank) {
		n = len(triviaBank)
	}

	rounds := make([]redis_models.GameRound, 0, n)
	for _, p := range pickDistinct(rng, len(triviaBank), n) {
		q := triviaBank[p]
		items := make([]redis_models.RoundItem, len(q.options))
		for i, opt := range q.options {
			items[i] = redis_models.RoundItem{Label: opt}
		}
		answer := shuffleItems(rng, items, 0)
		rounds = append(rounds, redis_models.GameRound{
			Prompt: q.prompt,
			Items:  items,
			Answer: answer,
		})
	}
	return rounds
}
