package chat

import (
	"context"
	"strings"
	"testing"
	"time"

	"calmwave/database/repository/memory"
	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() { utils.UseLogger(zap.NewNop()) }

func TestChannelAndMessages(t *testing.T) {
	hub := realtime.NewHub()
	defer hub.Close()
	channels := hub.Subscribe(realtime.TopicChannels)

	tick := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := &DefaultChatService{Repo: memory.NewChat(), Publisher: hub, Now: func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}}
	ctx := context.Background()
	sess := utils.Session{UID: "u1", Email: "u@x.io"}

	ch, err := svc.CreateChannel(ctx, sess, "  Anxiety support ")
	require.NoError(t, err)
	assert.Equal(t, "Anxiety support", ch.Name)
	assert.Equal(t, "channel.created", (<-channels.Events()).Type)

	room := hub.Subscribe(realtime.ChannelTopic(ch.ID))
	for _, text := range []string{"hello", " how is everyone? "} {
		_, err := svc.PostMessage(ctx, sess, ch.ID, text)
		require.NoError(t, err)
	}
	assert.Len(t, room.Events(), 2)

	msgs, err := svc.ListMessages(ctx, ch.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "hello", msgs[0].Text)
	assert.Equal(t, "how is everyone?", msgs[1].Text)
	assert.Equal(t, "u@x.io", msgs[1].User)

	list, err := svc.ListChannels(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestChatValidation(t *testing.T) {
	svc := &DefaultChatService{Repo: memory.NewChat()}
	ctx := context.Background()
	sess := utils.Session{UID: "u1"}

	_, err := svc.CreateChannel(ctx, sess, " ")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.PostMessage(ctx, sess, "nope", "hi")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	ch, err := svc.CreateChannel(ctx, sess, "general")
	require.NoError(t, err)
	_, err = svc.PostMessage(ctx, sess, ch.ID, "\n\t")
	assert.ErrorIs(t, err, utils.ErrInvalidInput)
	_, err = svc.PostMessage(ctx, sess, ch.ID, strings.Repeat("a", maxMessageLength+1))
	assert.ErrorIs(t, err, utils.ErrInvalidInput)

	_, err = svc.ListMessages(ctx, "nope")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
