package models

import "time"

// BookingStatus is the lifecycle state of an appointment.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingApproved BookingStatus = "approved"
	BookingRejected BookingStatus = "rejected"
)

// Booking links a user and a therapist. ScheduledAt is kept as the free-form text the client sent.
type Booking struct {
	ID               string        `bson:"id" json:"id"`
	TherapistID      string        `bson:"therapistId" json:"therapistId"`
	TherapistEmail   string        `bson:"therapistEmail" json:"therapistEmail"`
	TherapistName    string        `bson:"therapistFullName" json:"therapistFullName"`
	UserID           string        `bson:"userId" json:"userId"`
	UserEmail        string        `bson:"userEmail" json:"userEmail"`
	UserName         string        `bson:"userFullName" json:"userFullName"`
	UserContact      string        `bson:"userContact" json:"userContact"`
	ScheduledAt      string        `bson:"appointmentDate" json:"appointmentDate"`
	Status           BookingStatus `bson:"status" json:"status"`
	Rating           *float64      `bson:"rating,omitempty" json:"rating,omitempty"`
	Feedback         string        `bson:"feedback,omitempty" json:"feedback,omitempty"`
	FeedbackProvided bool          `bson:"feedbackProvided" json:"feedbackProvided"`
	CreatedAt        time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updatedAt" json:"updatedAt"`
}

type CreateBookingRequest struct {
	TherapistID string `json:"therapistId" binding:"required"`
	ScheduledAt string `json:"appointmentDate" binding:"required"`
}

type StatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required,bookingstatus"`
}

// FeedbackRequest carries an optional rating (1-5) and optional text; at least one is required.
type FeedbackRequest struct {
	Rating   *float64 `json:"rating" binding:"omitempty,min=1,max=5"`
	Feedback string   `json:"feedback"`
}

// RatingSummary is the aggregated feedback of one therapist.
type RatingSummary struct {
	Mean    float64 `json:"mean"`
	Rated   int     `json:"rated"`
	Replies int     `json:"replies"`
}

// TherapistProgress groups a user's sessions with one therapist.
type TherapistProgress struct {
	Therapist string   `json:"therapist"`
	Sessions  int      `json:"sessions"`
	Dates     []string `json:"dates"`
}
