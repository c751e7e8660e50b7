package litepack

import (
	"math"
	"strings"
)

// Scoring weights. The ranking of key points depends on these exact values.
const (
	leadBonusFirst  = 3.0
	leadBonusSecond = 2.0
	leadBonusThird  = 1.2
	positionBase    = 1.0
	positionDecay   = 0.03

	keywordHitWeight = 1.5

	comfortableMin   = 60
	comfortableMax   = 180
	comfortableBonus = 0.8
	longThreshold    = 220
	longPenaltyScale = 100.0
	longPenaltyMax   = 2.0
	shortThreshold   = 40
	shortPenalty     = 0.4

	boosterBonus = 0.3
)

// ScoreSentence rates how well a sentence works as a key point. The score
// adds a lead-position bias, 1.5 per distinct keyword present, a length band
// and a small bonus for definitional phrasing.
func ScoreSentence(sentence string, index int, keywords []string, lang Language) float64 {
	score := positionScore(index)

	lower := strings.ToLower(sentence)
	seen := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		if _, dup := seen[k]; dup {
			continue
		}
		if containsWord(lower, k) {
			seen[k] = struct{}{}
			score += keywordHitWeight
		}
	}

	n := runeLen(sentence)
	if n > longThreshold {
		score -= math.Min(longPenaltyMax, float64(n-longThreshold)/longPenaltyScale)
	}
	if n >= comfortableMin && n <= comfortableMax {
		score += comfortableBonus
	}
	if n < shortThreshold {
		score -= shortPenalty
	}

	if LexiconFor(lang).HasBooster(lower) {
		score += boosterBonus
	}
	return score
}

func positionScore(index int) float64 {
	switch index {
	case 0:
		return leadBonusFirst
	case 1:
		return leadBonusSecond
	case 2:
		return leadBonusThird
	default:
		return math.Max(0, positionBase-float64(index)*positionDecay)
	}
}
