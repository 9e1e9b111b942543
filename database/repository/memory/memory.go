// Package memory provides in-process repositories with the same semantics as the Mongo ones.
// They back service and handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"calmwave/database"
	"calmwave/models"

	"go.mongodb.org/mongo-driver/bson"
)

type Users struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewUsers(seed ...models.User) *Users {
	r := &Users{users: map[string]models.User{}}
	for _, u := range seed {
		r.users[u.ID] = u
	}
	return r
}

func (r *Users) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, database.ErrNotFound)
	}
	return &u, nil
}

func (r *Users) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, database.ErrNotFound)
}

func (r *Users) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID]; ok {
		return fmt.Errorf("user %s exists", u.ID)
	}
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = *u
	return nil
}

// UpdateSetDocument supports the profile fields written by the user service.
func (r *Users) UpdateSetDocument(_ context.Context, id string, doc bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return fmt.Errorf("user %s: %w", id, database.ErrNotFound)
	}
	for k, v := range doc {
		s, _ := v.(string)
		switch k {
		case "fullName":
			u.FullName = s
		case "age":
			u.Age = s
		case "contactNumber":
			u.ContactNumber = s
		case "profileImage":
			u.ProfileImage = s
		case "experience":
			u.Experience = s
		case "hospitalName":
			u.HospitalName = s
		case "fcmToken":
			u.FCMToken = s
		default:
			return fmt.Errorf("memory: unsupported user field %q", k)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

func (r *Users) ListByRole(_ context.Context, role models.Role, nameQuery string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(nameQuery))
	out := []models.User{}
	for _, u := range r.users {
		if u.Role == role && strings.Contains(strings.ToLower(u.FullName), q) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

type CheckIns struct {
	mu   sync.Mutex
	rows []models.CheckIn
}

func NewCheckIns(seed ...models.CheckIn) *CheckIns {
	return &CheckIns{rows: append([]models.CheckIn(nil), seed...)}
}

func (r *CheckIns) Create(_ context.Context, c *models.CheckIn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *c)
	return nil
}

func (r *CheckIns) History(_ context.Context, ownerID string) ([]models.CheckIn, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.CheckIn{}
	for _, c := range r.rows {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

func (r *CheckIns) Recent(ctx context.Context, ownerID string, limit int) ([]models.CheckIn, error) {
	asc, _ := r.History(ctx, ownerID)
	out := make([]models.CheckIn, 0, len(asc))
	for i := len(asc) - 1; i >= 0; i-- {
		out = append(out, asc[i])
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type Bookings struct {
	mu   sync.Mutex
	rows []models.Booking
}

func NewBookings(seed ...models.Booking) *Bookings {
	return &Bookings{rows: append([]models.Booking(nil), seed...)}
}

func (r *Bookings) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.CreatedAt = time.Now().UTC()
	b.UpdatedAt = b.CreatedAt
	r.rows = append(r.rows, *b)
	return nil
}

func (r *Bookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.rows {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id, database.ErrNotFound)
}

func (r *Bookings) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for i := len(r.rows) - 1; i >= 0; i-- {
		if keep(r.rows[i]) {
			out = append(out, r.rows[i])
		}
	}
	return out
}

func (r *Bookings) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (r *Bookings) ListByTherapist(_ context.Context, therapistID string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.TherapistID == therapistID }), nil
}

func (r *Bookings) update(id string, fn func(*models.Booking)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			fn(&r.rows[i])
			r.rows[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("booking %s: %w", id, database.ErrNotFound)
}

func (r *Bookings) UpdateStatus(_ context.Context, id string, status models.BookingStatus) error {
	return r.update(id, func(b *models.Booking) { b.Status = status })
}

func (r *Bookings) SetFeedback(_ context.Context, id string, rating *float64, feedback string) error {
	return r.update(id, func(b *models.Booking) {
		if rating != nil {
			v := *rating
			b.Rating = &v
		}
		if feedback != "" {
			b.Feedback = feedback
		}
		b.FeedbackProvided = true
	})
}

type Chat struct {
	mu       sync.Mutex
	channels []models.Channel
	messages []models.Message
}

func NewChat() *Chat { return &Chat{} }

func (r *Chat) CreateChannel(_ context.Context, c *models.Channel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels = append(r.channels, *c)
	return nil
}

func (r *Chat) GetChannel(_ context.Context, id string) (*models.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.channels {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("channel %s: %w", id, database.ErrNotFound)
}

func (r *Chat) ListChannels(_ context.Context) ([]models.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Channel{}, r.channels...), nil
}

func (r *Chat) CreateMessage(_ context.Context, m *models.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, *m)
	return nil
}

func (r *Chat) ListMessages(_ context.Context, channelID string) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Message{}
	for _, m := range r.messages {
		if m.ChannelID == channelID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type Articles struct {
	mu   sync.Mutex
	rows []models.Article
}

func NewArticles() *Articles { return &Articles{} }

func (r *Articles) Create(_ context.Context, a *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *a)
	return nil
}

func (r *Articles) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.rows {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("article %s: %w", id, database.ErrNotFound)
}

func (r *Articles) List(_ context.Context) ([]models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]models.Article{}, r.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
