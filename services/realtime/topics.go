package realtime

import (
	"errors"
	"strings"

	"calmwave/utils"
)

const (
	TopicChannels = "channels"
	TopicArticles = "articles"
)

var ErrTopicForbidden = errors.New("topic not allowed for this session")

func CheckInsTopic(uid string) string      { return "checkins:" + uid }
func BookingsTopic(uid string) string      { return "bookings:" + uid }
func ChannelTopic(channelID string) string { return "channel:" + channelID }

// Authorize checks that session may subscribe to topic. Per-user topics are private to their owner.
func Authorize(s utils.Session, topic string) error {
	if s.UID == "" {
		return ErrTopicForbidden
	}
	switch {
	case topic == TopicChannels, topic == TopicArticles:
		return nil
	case strings.HasPrefix(topic, "channel:"):
		if strings.TrimPrefix(topic, "channel:") == "" {
			return ErrTopicForbidden
		}
		return nil
	case strings.HasPrefix(topic, "checkins:"):
		if topic != CheckInsTopic(s.UID) {
			return ErrTopicForbidden
		}
		return nil
	case strings.HasPrefix(topic, "bookings:"):
		if topic != BookingsTopic(s.UID) {
			return ErrTopicForbidden
		}
		return nil
	}
	return ErrTopicForbidden
}
