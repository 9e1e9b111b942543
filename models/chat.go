package models

import "time"

type Channel struct {
	ID        string    `bson:"id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	CreatedBy string    `bson:"createdBy" json:"createdBy"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type Message struct {
	ID        string    `bson:"id" json:"id"`
	ChannelID string    `bson:"channelId" json:"channelId"`
	Text      string    `bson:"text" json:"text"`
	User      string    `bson:"user" json:"user"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type ChannelRequest struct {
	Name string `json:"name" binding:"required"`
}

type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}
