package realtime

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"calmwave/models"
	"calmwave/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	utils.UseLogger(zap.NewNop())
	goleak.VerifyTestMain(m)
}

func TestPublishReachesTopicSubscribersOnly(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	mine := hub.Subscribe(CheckInsTopic("u1"))
	other := hub.Subscribe(CheckInsTopic("u2"))

	hub.Publish(CheckInsTopic("u1"), "checkin.created", map[string]string{"emotion": "happy"})

	select {
	case ev := <-mine.Events():
		assert.Equal(t, "checkin.created", ev.Type)
		var body map[string]string
		require.NoError(t, json.Unmarshal(ev.Data, &body))
		assert.Equal(t, "happy", body["emotion"])
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	assert.Len(t, other.Events(), 0)
}

func TestCancelIsIdempotentAndClosesChannel(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe(TopicArticles)
	assert.Equal(t, 1, hub.Subscribers(TopicArticles))

	sub.Cancel()
	sub.Cancel()

	_, open := <-sub.Events()
	assert.False(t, open)
	assert.Equal(t, 0, hub.Subscribers(TopicArticles))

	// Publishing to a topic without subscribers is a no-op.
	hub.Publish(TopicArticles, "article.created", nil)
	hub.Close()
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	defer hub.Close()
	sub := hub.Subscribe(TopicChannels)

	for i := 0; i < defaultBuffer+5; i++ {
		hub.Publish(TopicChannels, "channel.created", nil)
	}
	assert.Len(t, sub.Events(), defaultBuffer)
	assert.Equal(t, int64(5), hub.Dropped())
}

func TestCloseCancelsEverySubscription(t *testing.T) {
	hub := NewHub()
	a := hub.Subscribe(TopicChannels)
	b := hub.Subscribe(ChannelTopic("c1"))

	hub.Close()

	for _, s := range []*Subscription{a, b} {
		_, open := <-s.Events()
		assert.False(t, open)
	}
	late := hub.Subscribe(TopicChannels)
	_, open := <-late.Events()
	assert.False(t, open)
	late.Cancel()
}

func TestConcurrentPublishAndCancel(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		sub := hub.Subscribe(TopicArticles)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				hub.Publish(TopicArticles, "article.created", j)
			}
		}()
		go func() {
			defer wg.Done()
			for range sub.Events() {
				sub.Cancel()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, hub.Subscribers(TopicArticles))
}

func TestAuthorize(t *testing.T) {
	user := utils.Session{UID: "u1", Role: models.RoleUser}

	tests := []struct {
		topic string
		ok    bool
	}{
		{CheckInsTopic("u1"), true},
		{CheckInsTopic("u2"), false},
		{BookingsTopic("u1"), true},
		{BookingsTopic("u2"), false},
		{TopicChannels, true},
		{TopicArticles, true},
		{ChannelTopic("c9"), true},
		{"channel:", false},
		{"admin", false},
	}
	for _, tt := range tests {
		t.Run(tt.topic, func(t *testing.T) {
			err := Authorize(user, tt.topic)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrTopicForbidden)
			}
		})
	}
	assert.ErrorIs(t, Authorize(utils.Session{}, TopicArticles), ErrTopicForbidden)
}
