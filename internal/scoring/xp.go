package scoring

import "math"

const (
	// maxSpeedBonus is awarded when the average answer takes 5 seconds or less
	maxSpeedBonus = 25
	// fastThresholdSeconds is the average time per question at or below which
	// the full speed bonus applies
	fastThresholdSeconds = 5.0
	// slowThresholdSeconds is the average time per question at or above which
	// no speed bonus applies; between the thresholds the bonus decays linearly
	slowThresholdSeconds = 30.0
)

// CalculateXP computes the experience points awarded for one attempt,
// combining a score-proportional base award with a speed bonus.
// Formula: base = round(scorePercent * 0.5), bonus = 25 at <=5s/question
// decaying linearly to 0 at >=30s/question.
// Practice-only game types pass xpEnabled=false and always receive 0 while
// the attempt itself is still recorded.
func CalculateXP(scorePercent, elapsedSeconds, questionCount int, xpEnabled bool) int {
	if !xpEnabled || questionCount <= 0 {
		return 0
	}

	base := int(math.Round(float64(scorePercent) * 0.5))
	return base + speedBonus(float64(elapsedSeconds)/float64(questionCount))
}

func speedBonus(avgSecondsPerQuestion float64) int {
	if avgSecondsPerQuestion <= fastThresholdSeconds {
		return maxSpeedBonus
	}
	if avgSecondsPerQuestion >= slowThresholdSeconds {
		return 0
	}

	bonus := int(math.Round(maxSpeedBonus - (avgSecondsPerQuestion - fastThresholdSeconds)))
	if bonus < 0 {
		bonus = 0
	}
	return bonus
}

// Level derives a user's level from their total accumulated XP
func Level(totalXP int) int {
	if totalXP < 0 {
		return 1
	}
	return totalXP/100 + 1
}
