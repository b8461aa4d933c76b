package scoring

import (
	"testing"

	"vocabquest/internal/models"
)

func TestDefaultPolicies(t *testing.T) {
	policies := DefaultPolicies()

	tests := []struct {
		gameType      models.GameType
		xpEnabled     bool
		singleAttempt bool
		accumulation  XPAccumulation
	}{
		{models.GameReading, true, true, XPLatest},
		{models.GameListening, true, true, XPLatest},
		{models.GameFlashcard, true, false, XPCumulative},
		{models.GameIntuition, false, false, XPCumulative},
	}

	for _, tt := range tests {
		t.Run(string(tt.gameType), func(t *testing.T) {
			policy := policies.For(tt.gameType)
			if policy.XPEnabled != tt.xpEnabled {
				t.Errorf("XPEnabled = %v, want %v", policy.XPEnabled, tt.xpEnabled)
			}
			if policy.SingleAttempt != tt.singleAttempt {
				t.Errorf("SingleAttempt = %v, want %v", policy.SingleAttempt, tt.singleAttempt)
			}
			if policy.Accumulation != tt.accumulation {
				t.Errorf("Accumulation = %v, want %v", policy.Accumulation, tt.accumulation)
			}
		})
	}
}

func TestPolicySetForUnknownGameType(t *testing.T) {
	policies := DefaultPolicies()
	policy := policies.For(models.GameType("mystery"))

	if !policy.XPEnabled || policy.SingleAttempt {
		t.Errorf("unknown game type should default to repeatable XP-enabled, got %+v", policy)
	}
}

func TestEveryGameTypeHasAPolicy(t *testing.T) {
	policies := DefaultPolicies()
	for _, gameType := range models.AllGameTypes {
		if _, ok := policies[gameType]; !ok {
			t.Errorf("no policy configured for %s", gameType)
		}
	}
}
