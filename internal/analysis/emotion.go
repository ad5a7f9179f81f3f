package analysis

import (
	"strings"

	"moodtracker/internal/models"
)

// Keyword sets checked in priority order. The first set with any match
// decides the emotion, so a text mentioning both "sad" and "angry" is
// tagged Sadness.
var (
	sadnessWords   = []string{"sad", "depressed", "lonely", "cry"}
	angerWords     = []string{"angry", "frustrated", "annoyed"}
	anxietyWords   = []string{"anxious", "worried", "scared"}
	happinessWords = []string{"happy", "excited", "grateful"}
)

// ClassifyEmotion derives a coarse emotion category from entry text using
// case-insensitive substring matching. Matching is intentionally naive:
// there is no tokenization or word-boundary handling, so a keyword inside
// a longer word still matches. Changing that would silently change stored
// classifications.
func ClassifyEmotion(text string) models.Emotion {
	lowered := strings.ToLower(text)

	if containsAny(lowered, sadnessWords) {
		return models.EmotionSadness
	}
	if containsAny(lowered, angerWords) {
		return models.EmotionAnger
	}
	if containsAny(lowered, anxietyWords) {
		return models.EmotionAnxiety
	}
	if containsAny(lowered, happinessWords) {
		return models.EmotionHappiness
	}

	return models.EmotionNeutral
}

func containsAny(lowered string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
