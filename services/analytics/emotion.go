// Package analytics holds the derived numbers shown on the dashboard and therapist pages: emotion scores,
// the days-without-alcohol streak and the therapist rating summary. Everything here is pure.
package analytics

import "calmwave/models"

// EmotionValue is the chart score and display glyph of an emotion label.
type EmotionValue struct {
	Score int    `json:"score"`
	Glyph string `json:"glyph,omitempty"`
}

// Known reports whether the label resolved to one of the five defined emotions.
func (v EmotionValue) Known() bool {
	return v.Score != 0
}

// MapEmotion converts a label to its score and glyph. Unrecognised labels (legacy "neutral" rows
// included) map to the zero value rather than an error.
func MapEmotion(label models.EmotionLabel) EmotionValue {
	switch label {
	case models.EmotionWorst:
		return EmotionValue{Score: 5, Glyph: "😢"}
	case models.EmotionWorse:
		return EmotionValue{Score: 10, Glyph: "😟"}
	case models.EmotionMedium:
		return EmotionValue{Score: 15, Glyph: "😐"}
	case models.EmotionHappy:
		return EmotionValue{Score: 20, Glyph: "😊"}
	case models.EmotionHappier:
		return EmotionValue{Score: 25, Glyph: "😁"}
	default:
		return EmotionValue{}
	}
}

// IsEmotion reports whether s is one of the writable labels.
func IsEmotion(s string) bool {
	return MapEmotion(models.EmotionLabel(s)).Known()
}
