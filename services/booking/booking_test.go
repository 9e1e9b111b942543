package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"calmwave/database/repository/memory"
	"calmwave/models"
	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	therapist = utils.Session{UID: "t1", Email: "t@x.io", Role: models.RoleTherapist}
	client    = utils.Session{UID: "u1", Email: "u@x.io", Role: models.RoleUser}
	now       = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
)

func init() { utils.UseLogger(zap.NewNop()) }

type queued struct {
	payload models.PushPayload
	fireAt  time.Time
}

type fakeNotifier struct {
	status    []models.PushPayload
	reminders []queued
	err       error
}

func (f *fakeNotifier) NotifyStatus(_ context.Context, p models.PushPayload) error {
	f.status = append(f.status, p)
	return f.err
}

func (f *fakeNotifier) ScheduleReminder(_ context.Context, p models.PushPayload, at time.Time) error {
	f.reminders = append(f.reminders, queued{p, at})
	return f.err
}

type mapCache struct {
	data   map[string][]byte
	gets   int
	broken bool
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.gets++
	if m.broken {
		return nil, false, errors.New("redis down")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newService(policy TransitionPolicy, seed ...models.Booking) (*DefaultBookingSessionService, *fakeNotifier, *mapCache) {
	n := &fakeNotifier{}
	c := &mapCache{data: map[string][]byte{}}
	users := memory.NewUsers(
		models.User{ID: "t1", Email: "t@x.io", Role: models.RoleTherapist, FullName: "Dr. Tess"},
		models.User{ID: "u1", Email: "u@x.io", Role: models.RoleUser, FullName: "Uma", ContactNumber: "0712"},
		models.User{ID: "u2", Email: "v@x.io", Role: models.RoleUser, FullName: "Vic"},
	)
	return &DefaultBookingSessionService{
		Repo:         memory.NewBookings(seed...),
		Users:        users,
		Policy:       policy,
		Notifier:     n,
		RatingCache:  c,
		RatingTTL:    time.Minute,
		ReminderLead: time.Hour,
		Now:          func() time.Time { return now },
	}, n, c
}

func rating(v float64) *float64 { return &v }

func TestCreate(t *testing.T) {
	svc, _, _ := newService(nil)
	hub := realtime.NewHub()
	defer hub.Close()
	svc.Publisher = hub
	sub := hub.Subscribe(realtime.BookingsTopic("t1"))

	b, err := svc.Create(context.Background(), client, models.CreateBookingRequest{TherapistID: "t1", ScheduledAt: " Tue Feb 10 2026 2:30:00 PM "})
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, "Dr. Tess", b.TherapistName)
	assert.Equal(t, "Uma", b.UserName)
	assert.Equal(t, "0712", b.UserContact)
	assert.Equal(t, "Tue Feb 10 2026 2:30:00 PM", b.ScheduledAt)
	assert.Equal(t, "booking.created", (<-sub.Events()).Type)
}

func TestCreateRejections(t *testing.T) {
	svc, _, _ := newService(nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, therapist, models.CreateBookingRequest{TherapistID: "t1", ScheduledAt: "x"})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	_, err = svc.Create(ctx, client, models.CreateBookingRequest{TherapistID: "u2", ScheduledAt: "x"})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.Create(ctx, utils.Session{UID: "u2", Role: models.RoleUser}, models.CreateBookingRequest{TherapistID: "t1", ScheduledAt: "x"})
	assert.ErrorIs(t, err, utils.ErrInvalidInput, "missing contact number")

	_, err = svc.Create(ctx, client, models.CreateBookingRequest{TherapistID: "t1", ScheduledAt: "  "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
}

func TestUpdateStatusNotifiesAndSchedulesReminder(t *testing.T) {
	svc, n, _ := newService(nil, models.Booking{
		ID: "b1", TherapistID: "t1", UserID: "u1", TherapistName: "Dr. Tess",
		ScheduledAt: "2026-02-10 15:00", Status: models.BookingPending,
	})

	b, err := svc.UpdateStatus(context.Background(), therapist, "b1", models.BookingApproved)
	require.NoError(t, err)
	assert.Equal(t, models.BookingApproved, b.Status)

	require.Len(t, n.status, 1)
	assert.Equal(t, "u1", n.status[0].UserID)
	assert.Equal(t, "approved", n.status[0].Data["status"])
	require.Len(t, n.reminders, 1)
	assert.Equal(t, time.Date(2026, 2, 10, 14, 0, 0, 0, time.UTC), n.reminders[0].fireAt)

	// Same-state write is a no-op.
	_, err = svc.UpdateStatus(context.Background(), therapist, "b1", models.BookingApproved)
	require.NoError(t, err)
	assert.Len(t, n.status, 1)
}

func TestUpdateStatusSkipsReminderForPastOrUnreadableDates(t *testing.T) {
	svc, n, _ := newService(nil,
		models.Booking{ID: "past", TherapistID: "t1", UserID: "u1", ScheduledAt: "2025-01-01", Status: models.BookingPending},
		models.Booking{ID: "free", TherapistID: "t1", UserID: "u1", ScheduledAt: "next tuesday-ish", Status: models.BookingPending},
	)
	for _, id := range []string{"past", "free"} {
		_, err := svc.UpdateStatus(context.Background(), therapist, id, models.BookingApproved)
		require.NoError(t, err)
	}
	assert.Len(t, n.status, 2)
	assert.Empty(t, n.reminders)
}

func TestUpdateStatusQueueFailureDoesNotFail(t *testing.T) {
	svc, n, _ := newService(nil, models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingPending})
	n.err = errors.New("redis down")
	b, err := svc.UpdateStatus(context.Background(), therapist, "b1", models.BookingRejected)
	require.NoError(t, err)
	assert.Equal(t, models.BookingRejected, b.Status)
}

func TestUpdateStatusOwnership(t *testing.T) {
	svc, _, _ := newService(nil, models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingPending})
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, utils.Session{UID: "t2", Role: models.RoleTherapist}, "b1", models.BookingApproved)
	assert.ErrorIs(t, err, utils.ErrForbidden)
	_, err = svc.UpdateStatus(ctx, client, "b1", models.BookingApproved)
	assert.ErrorIs(t, err, utils.ErrForbidden)
	_, err = svc.UpdateStatus(ctx, therapist, "missing", models.BookingApproved)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestPermissiveAllowsAnyTransitionAndRepeatedFeedback(t *testing.T) {
	svc, _, _ := newService(PermissivePolicy{}, models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingRejected})
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, therapist, "b1", models.BookingPending)
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(4)})
	require.NoError(t, err)
	b, err := svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(2), Feedback: " meh "})
	require.NoError(t, err)
	assert.Equal(t, 2.0, *b.Rating)
	assert.Equal(t, "meh", b.Feedback)
}

func TestResubmittedFeedbackKeepsOmittedParts(t *testing.T) {
	svc, _, _ := newService(PermissivePolicy{}, models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingApproved})
	ctx := context.Background()

	_, err := svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(4), Feedback: "great"})
	require.NoError(t, err)

	b, err := svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Feedback: "follow-up"})
	require.NoError(t, err)
	require.NotNil(t, b.Rating)
	assert.Equal(t, 4.0, *b.Rating)
	assert.Equal(t, "follow-up", b.Feedback)

	summary, err := svc.TherapistRating(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Mean: 4, Rated: 1, Replies: 1}, summary)

	b, err = svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(5)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, *b.Rating)
	assert.Equal(t, "follow-up", b.Feedback)

	stored, err := svc.Repo.GetByID(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, stored.Rating)
	assert.Equal(t, 5.0, *stored.Rating)
	assert.Equal(t, "follow-up", stored.Feedback)
	assert.True(t, stored.FeedbackProvided)

	summary, err = svc.TherapistRating(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Mean: 5, Rated: 1, Replies: 1}, summary)
}

func TestStrictPolicy(t *testing.T) {
	svc, _, _ := newService(StrictPolicy{},
		models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingPending},
		models.Booking{ID: "b2", TherapistID: "t1", UserID: "u1", Status: models.BookingPending},
	)
	ctx := context.Background()

	_, err := svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(5)})
	assert.ErrorIs(t, err, utils.ErrInvalidTransition, "no feedback before approval")

	_, err = svc.UpdateStatus(ctx, therapist, "b1", models.BookingApproved)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, therapist, "b1", models.BookingRejected)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)

	_, err = svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(5)})
	require.NoError(t, err)
	_, err = svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(1)})
	assert.ErrorIs(t, err, utils.ErrFeedbackAlreadyProvided)

	_, err = svc.UpdateStatus(ctx, therapist, "b2", models.BookingRejected)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, therapist, "b2", models.BookingPending)
	assert.ErrorIs(t, err, utils.ErrInvalidTransition)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	svc, _, _ := newService(nil, models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingApproved})
	ctx := context.Background()

	_, err := svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Feedback: "   "})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Rating: rating(6)})
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.SubmitFeedback(ctx, utils.Session{UID: "u2"}, "b1", models.FeedbackRequest{Rating: rating(3)})
	assert.ErrorIs(t, err, utils.ErrForbidden)

	b, err := svc.SubmitFeedback(ctx, client, "b1", models.FeedbackRequest{Feedback: "thanks"})
	require.NoError(t, err)
	assert.Nil(t, b.Rating)
	assert.True(t, b.FeedbackProvided)
}

func TestTherapistRatingCachesAndInvalidates(t *testing.T) {
	svc, _, cache := newService(nil,
		models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1", Status: models.BookingApproved, Rating: rating(4), Feedback: "good", FeedbackProvided: true},
		models.Booking{ID: "b2", TherapistID: "t1", UserID: "u1", Status: models.BookingApproved},
	)
	ctx := context.Background()

	got, err := svc.TherapistRating(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Mean: 4, Rated: 1, Replies: 1}, got)
	assert.Contains(t, cache.data, "t1")

	_, err = svc.SubmitFeedback(ctx, client, "b2", models.FeedbackRequest{Rating: rating(2)})
	require.NoError(t, err)
	assert.NotContains(t, cache.data, "t1")

	got, err = svc.TherapistRating(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{Mean: 3, Rated: 2, Replies: 1}, got)
}

func TestTherapistRatingFallsThroughBrokenCache(t *testing.T) {
	svc, _, cache := newService(nil, models.Booking{ID: "b1", TherapistID: "t1", Rating: rating(5)})
	cache.broken = true
	got, err := svc.TherapistRating(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, 5.0, got.Mean)
}

func TestTherapistRatingNoFeedback(t *testing.T) {
	svc, _, _ := newService(nil)
	got, err := svc.TherapistRating(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.RatingSummary{}, got)
}

func TestProgress(t *testing.T) {
	svc, _, _ := newService(nil,
		models.Booking{ID: "1", UserID: "u1", TherapistName: "Dr. Tess", ScheduledAt: "Tue Feb 10 2026 2:30:00 PM"},
		models.Booking{ID: "2", UserID: "u1", TherapistName: "Dr. Tess", ScheduledAt: "2026-01-05"},
		models.Booking{ID: "3", UserID: "u1", TherapistName: "Dr. Abe", ScheduledAt: "whenever"},
		models.Booking{ID: "4", UserID: "u2", TherapistName: "Dr. Abe", ScheduledAt: "2026-01-05"},
	)

	got, err := svc.Progress(context.Background(), client)
	require.NoError(t, err)
	assert.Equal(t, []models.TherapistProgress{
		{Therapist: "Dr. Abe", Sessions: 1, Dates: []string{}},
		{Therapist: "Dr. Tess", Sessions: 2, Dates: []string{"2026-01-05", "2026-02-10"}},
	}, got)
}

func TestListForTherapistRequiresRole(t *testing.T) {
	svc, _, _ := newService(nil, models.Booking{ID: "b1", TherapistID: "t1", UserID: "u1"})
	_, err := svc.ListForTherapist(context.Background(), client)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	got, err := svc.ListForTherapist(context.Background(), therapist)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
