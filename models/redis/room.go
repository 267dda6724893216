package redis

// Room phases. A room only ever moves forward through these, except for
// the resolved -> active reset that starts the next round.
const (
	PhaseWaiting  = "waiting"
	PhaseActive   = "active"
	PhaseResolved = "resolved"
	PhaseFinished = "finished"
)

// Game types supported by the round builders
const (
	GameMemoryMatch  = "memory_match"
	GameTrivia       = "trivia"
	GameShoppingList = "shopping_list"
)

// RoundItem is one selectable element of a round: a card, a trivia option
// or a shopping list entry
type RoundItem struct {
	Label string `json:"label"`
}

// GameRound is one round of a game. Answer is the index into Items of the
// correct selection.
type GameRound struct {
	Prompt string      `json:"prompt"`
	Items  []RoundItem `json:"items"`
	Answer int         `json:"answer"`
}

// Selection records the single answer accepted for the current round.
// By lets the peer's client distinguish "I caused this" from "peer caused
// this" when the snapshot arrives.
type Selection struct {
	By      string `json:"by"`
	Item    int    `json:"item"`
	Correct bool   `json:"correct"`
	At      int64  `json:"at"` // Unix timestamp
}

// Room is the authoritative document for one game session between two
// participants. It is the only shared mutable state: every change after
// creation goes through a preconditioned store update.
type Room struct {
	Code        string           `json:"code"`
	GameType    string           `json:"game_type"`
	InitiatorID string           `json:"initiator_id"`
	JoinerID    string           `json:"joiner_id,omitempty"`
	Phase       string           `json:"phase"`
	Round       int              `json:"round"`
	Rounds      []GameRound      `json:"rounds"`
	Selection   *Selection       `json:"selection,omitempty"`
	Scores      map[string]int   `json:"scores"`
	LastSeen    map[string]int64 `json:"last_seen"` // Unix timestamps, updated by heartbeats
	ForfeitBy   string           `json:"forfeit_by,omitempty"`
	CreatedAt   int64            `json:"created_at"`
	FinishedAt  int64            `json:"finished_at,omitempty"`
}

// IsParticipant reports whether id occupies one of the room's two seats
func (r *Room) IsParticipant(id string) bool {
	return id != "" && (id == r.InitiatorID || id == r.JoinerID)
}

// Peer returns the other participant's id, or "" if the seat is empty
func (r *Room) Peer(id string) string {
	if id == r.InitiatorID {
		return r.JoinerID
	}
	if id == r.JoinerID {
		return r.InitiatorID
	}
	return ""
}

// CurrentRound returns the round in progress, or nil once the room is done
func (r *Room) CurrentRound() *GameRound {
	if r.Round < 0 || r.Round >= len(r.Rounds) {
		return nil
	}
	return &r.Rounds[r.Round]
}
