package scoring

import (
	"math/rand"
	"strings"
)

// SelectWords builds a prioritized practice set for the next session. Words
// the user previously missed on this unit are favored, capped at half the
// target so a session is never fully remedial, and the final set is shuffled
// so remedial words are not positionally identifiable.
//
// If the unit has fewer words than targetCount, all words are returned in
// shuffled order. With no prior misses this degrades to a uniform random
// sample.
func SelectWords(allWords []string, priorMissedWords []string, targetCount int) []string {
	if targetCount <= 0 || len(allWords) == 0 {
		return nil
	}

	missed := make(map[string]bool, len(priorMissedWords))
	for _, word := range priorMissedWords {
		missed[strings.ToLower(strings.TrimSpace(word))] = true
	}

	var priority, remainder []string
	for _, word := range allWords {
		if missed[strings.ToLower(word)] {
			priority = append(priority, word)
		} else {
			remainder = append(remainder, word)
		}
	}

	shuffle(priority)
	shuffle(remainder)

	if len(allWords) <= targetCount {
		combined := append(priority, remainder...)
		shuffle(combined)
		return combined
	}

	// At most half the session comes from previously-missed words
	priorityCap := targetCount / 2
	if priorityCap > len(priority) {
		priorityCap = len(priority)
	}

	selected := make([]string, 0, targetCount)
	selected = append(selected, priority[:priorityCap]...)

	for _, word := range remainder {
		if len(selected) >= targetCount {
			break
		}
		selected = append(selected, word)
	}

	// Top up from the remaining priority words if the remainder ran short
	for _, word := range priority[priorityCap:] {
		if len(selected) >= targetCount {
			break
		}
		selected = append(selected, word)
	}

	shuffle(selected)
	return selected
}

func shuffle(words []string) {
	rand.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
}
