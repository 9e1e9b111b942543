package analytics

import (
	"testing"

	"calmwave/models"

	"github.com/stretchr/testify/assert"
)

func rating(v float64) *float64 { return &v }

func TestAggregateRatings(t *testing.T) {
	tests := []struct {
		name string
		in   []models.Booking
		want models.RatingSummary
	}{
		{"empty", nil, models.RatingSummary{}},
		{
			"ratings and a reply",
			[]models.Booking{{Rating: rating(4)}, {Rating: rating(2)}, {Feedback: "x"}},
			models.RatingSummary{Mean: 3, Rated: 2, Replies: 1},
		},
		{
			"feedback without rating does not dilute the mean",
			[]models.Booking{{Rating: rating(5)}, {Feedback: "thanks"}, {Feedback: "ok"}},
			models.RatingSummary{Mean: 5, Rated: 1, Replies: 2},
		},
		{
			"rating and feedback on one booking count once each",
			[]models.Booking{{Rating: rating(3), Feedback: "fine"}},
			models.RatingSummary{Mean: 3, Rated: 1, Replies: 1},
		},
		{
			"no ratings yields zero mean",
			[]models.Booking{{Feedback: "hi"}, {}},
			models.RatingSummary{Mean: 0, Rated: 0, Replies: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateRatings(tt.in))
		})
	}
}

func TestAggregateRatingsIsIdempotent(t *testing.T) {
	in := []models.Booking{{Rating: rating(1)}, {Rating: rating(4), Feedback: "good"}}
	assert.Equal(t, AggregateRatings(in), AggregateRatings(in))
	assert.Equal(t, 1.0, *in[0].Rating)
}
