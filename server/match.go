package main

const (
	MapRadius     = 8 // hex grid radius
	MaxPlayers    = 4
	MatchTime     = 600.0 // 10 minute matches
	PostMatchTime = 10.0  // leaderboard display duration
)

var playerColors = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12"}

// MatchState tracks the match clock and the post-match rematch vote
type MatchState struct {
	Timer        float64
	Over         bool
	PostTimer    float64
	RematchVotes map[string]bool // player ids who voted
}

// NewMatchState returns a fresh ACTIVE match
func NewMatchState() MatchState {
	return MatchState{
		Timer:        MatchTime,
		RematchVotes: make(map[string]bool),
	}
}

// End transitions the match to OVER and starts the display timer
func (m *MatchState) End() {
	m.Over = true
	m.PostTimer = PostMatchTime
}

// Reset returns the match to a fresh ACTIVE state
func (m *MatchState) Reset() {
	m.Timer = MatchTime
	m.Over = false
	m.PostTimer = 0
	m.RematchVotes = make(map[string]bool)
}

// Vote records a rematch vote and returns the tally
func (m *MatchState) Vote(playerID string, total int) (cast int, all bool) {
	m.RematchVotes[playerID] = true
	cast = len(m.RematchVotes)
	return cast, total > 0 && cast >= total
}
