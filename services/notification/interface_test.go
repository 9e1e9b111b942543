package notification

import (
	"context"
	"errors"
	"testing"

	"calmwave/database"
	"calmwave/models"
	"calmwave/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, database.ErrNotFound
}

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "projects/x/messages/1", nil
}

func init() { utils.UseLogger(zap.NewNop()) }

func TestSendUserPushNotification(t *testing.T) {
	users := fakeUsers{
		"u1": {ID: "u1", Role: models.RoleUser, FCMToken: "tok"},
		"u2": {ID: "u2", Role: models.RoleUser},
	}
	sender := &fakeSender{}
	svc, err := NewDefaultNotificationService(users, sender)
	require.NoError(t, err)

	data := map[string]string{"bookingId": "b1"}
	require.NoError(t, svc.SendUserPushNotification(context.Background(), "u1", "Booking approved", "See you soon", data))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "tok", sender.sent[0].Token)
	assert.Equal(t, "user", sender.sent[0].Data["role"])
	assert.Equal(t, "b1", sender.sent[0].Data["bookingId"])
	_, mutated := data["role"]
	assert.False(t, mutated)

	// Missing token and unknown users are silent no-ops.
	require.NoError(t, svc.SendUserPushNotification(context.Background(), "u2", "t", "b", nil))
	require.NoError(t, svc.SendUserPushNotification(context.Background(), "ghost", "t", "b", nil))
	assert.Len(t, sender.sent, 1)
}

func TestSendUserPushNotificationSendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("unavailable")}
	svc, err := NewDefaultNotificationService(fakeUsers{"u1": {ID: "u1", FCMToken: "tok"}}, sender)
	require.NoError(t, err)

	err = svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil)
	assert.ErrorContains(t, err, "unavailable")
}

func TestNewDefaultNotificationServiceRequiresDeps(t *testing.T) {
	_, err := NewDefaultNotificationService(nil, &fakeSender{})
	assert.Error(t, err)
}
