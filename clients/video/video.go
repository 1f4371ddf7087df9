// Package video provisions meeting rooms with the video-conferencing
// provider.
package video

import (
	"context"
	"time"
)

// Room is a provisioned video meeting.
type Room struct {
	JoinURL  string
	Password string
}

// Client creates a meeting room for a booked interval.
type Client interface {
	CreateRoom(ctx context.Context, topic string, start time.Time, durationMin int) (*Room, error)
}
