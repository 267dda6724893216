package game_constants

import "time"

const ROOM_CODE_LENGTH = 4
const MAX_CODE_ATTEMPTS = 5

// Rounds per session for each game type
const MEMORY_MATCH_ROUNDS = 8
const TRIVIA_ROUNDS = 10
const SHOPPING_LIST_ROUNDS = 6

const OPTIONS_PER_ROUND = 4

// Delay between a round being resolved and the next one starting
const RESOLVE_DELAY = 3 * time.Second

// Rooms older than this are removed by the background sweep
const ROOM_RETENTION = 1 * time.Hour

// A seated participant silent for longer than this forfeits the game
const PRESENCE_TIMEOUT = 30 * time.Second

// How often the sweep task runs
const SWEEP_INTERVAL = 1 * time.Minute
