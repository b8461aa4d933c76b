package scoring

import "vocabquest/internal/models"

// XPAccumulation controls how UserProgress.TotalXP changes on a repeat attempt
type XPAccumulation int

const (
	// XPCumulative sums the XP of every attempt
	XPCumulative XPAccumulation = iota
	// XPLatest replaces the stored XP with the latest attempt's award
	XPLatest
)

// GamePolicy is the per-game-type configuration consumed by the attempt
// recorder. Policy lives here, in one place, instead of being duplicated in
// each game handler.
type GamePolicy struct {
	// XPEnabled is false for practice-only drills that award no XP
	XPEnabled bool
	// SingleAttempt marks test game types playable at most once per unit
	SingleAttempt bool
	// Accumulation picks the UserProgress XP policy for this game type
	Accumulation XPAccumulation
	// TestType is the leaderboard category this game type ranks under
	TestType string
}

// PolicySet maps game types to their policies
type PolicySet map[models.GameType]GamePolicy

// DefaultPolicies returns the shipped game-type configuration. Reading and
// listening are graded tests: one attempt per unit, XP pinned to that one
// attempt. All other games are repeatable with cumulative XP, except the
// intuition drill which records attempts but never awards XP.
func DefaultPolicies() PolicySet {
	return PolicySet{
		models.GameReading:     {XPEnabled: true, SingleAttempt: true, Accumulation: XPLatest, TestType: "reading"},
		models.GameListening:   {XPEnabled: true, SingleAttempt: true, Accumulation: XPLatest, TestType: "listening"},
		models.GameWriting:     {XPEnabled: true, Accumulation: XPCumulative, TestType: "practice"},
		models.GameSpeaking:    {XPEnabled: true, Accumulation: XPCumulative, TestType: "practice"},
		models.GameMatching:    {XPEnabled: true, Accumulation: XPCumulative, TestType: "practice"},
		models.GameFlashcard:   {XPEnabled: true, Accumulation: XPCumulative, TestType: "practice"},
		models.GameContextQuiz: {XPEnabled: true, Accumulation: XPCumulative, TestType: "practice"},
		models.GameIntuition:   {XPEnabled: false, Accumulation: XPCumulative, TestType: "practice"},
	}
}

// For returns the policy for a game type, defaulting to a repeatable,
// XP-enabled game when the type is not configured
func (p PolicySet) For(gameType models.GameType) GamePolicy {
	if policy, ok := p[gameType]; ok {
		return policy
	}
	return GamePolicy{XPEnabled: true, Accumulation: XPCumulative, TestType: "practice"}
}
