package booking

import (
	"context"
	"sort"

	"calmwave/models"
	"calmwave/utils"
)

// Progress groups the user's bookings by therapist name. Unreadable dates still count as sessions.
func (s *DefaultBookingSessionService) Progress(ctx context.Context, sess utils.Session) ([]models.TherapistProgress, error) {
	bookings, err := s.Repo.ListByUser(ctx, sess.UID)
	if err != nil {
		return nil, err
	}

	byTherapist := map[string]*models.TherapistProgress{}
	for _, b := range bookings {
		p := byTherapist[b.TherapistName]
		if p == nil {
			p = &models.TherapistProgress{Therapist: b.TherapistName, Dates: []string{}}
			byTherapist[b.TherapistName] = p
		}
		p.Sessions++
		if at, ok := ParseAppointmentDate(b.ScheduledAt); ok {
			p.Dates = append(p.Dates, at.UTC().Format("2006-01-02"))
		}
	}

	out := make([]models.TherapistProgress, 0, len(byTherapist))
	for _, p := range byTherapist {
		sort.Strings(p.Dates)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Therapist < out[j].Therapist })
	return out, nil
}
