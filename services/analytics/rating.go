package analytics

import "calmwave/models"

// AggregateRatings reduces a therapist's bookings to a mean rating and a reply count. Ratings and
// replies are counted independently: a booking may carry either, both or neither.
func AggregateRatings(bookings []models.Booking) models.RatingSummary {
	var (
		sum     float64
		rated   int
		replies int
	)
	for _, b := range bookings {
		if b.Rating != nil {
			sum += *b.Rating
			rated++
		}
		if b.Feedback != "" {
			replies++
		}
	}

	summary := models.RatingSummary{Rated: rated, Replies: replies}
	if rated > 0 {
		summary.Mean = sum / float64(rated)
	}
	return summary
}
