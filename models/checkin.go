// File: models/checkin.go
package models

import "time"

// EmotionLabel is the categorical mood picked on the check-in form.
type EmotionLabel string

const (
	EmotionWorst   EmotionLabel = "worst"
	EmotionWorse   EmotionLabel = "worse"
	EmotionMedium  EmotionLabel = "medium"
	EmotionHappy   EmotionLabel = "happy"
	EmotionHappier EmotionLabel = "happier"
)

// EmotionLabels lists the labels accepted on write, worst first.
var EmotionLabels = []EmotionLabel{EmotionWorst, EmotionWorse, EmotionMedium, EmotionHappy, EmotionHappier}

// AlcoholFlag records whether the user drank on the day of the check-in.
type AlcoholFlag string

const (
	AlcoholYes AlcoholFlag = "yes"
	AlcoholNo  AlcoholFlag = "no"
)

// CheckIn is a single timestamped mood + behaviour self-report. Never updated after insert.
type CheckIn struct {
	ID        string       `bson:"id" json:"id"`
	OwnerID   string       `bson:"ownerId" json:"ownerId"`
	Email     string       `bson:"email" json:"email"`
	Emotion   EmotionLabel `bson:"emotion" json:"emotion"`
	Alcohol   AlcoholFlag  `bson:"alcohol" json:"alcohol"`
	Timestamp time.Time    `bson:"timestamp" json:"timestamp"`
}

// CheckInInput is the body of POST /api/checkins.
type CheckInInput struct {
	Emotion EmotionLabel `json:"emotion" binding:"required,emotion"`
	Alcohol AlcoholFlag  `json:"alcohol" binding:"required,alcohol"`
}

// DashboardPoint is one chart sample.
type DashboardPoint struct {
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Label     string       `json:"label"`
	Emotion   EmotionLabel `json:"emotion"`
	Score     int          `json:"score"`
	Glyph     string       `json:"glyph,omitempty"`
}

type Dashboard struct {
	Points             []DashboardPoint `json:"points"`
	DaysWithoutAlcohol int              `json:"daysWithoutAlcohol"`
}
