package tui

import "github.com/mmcdole/marquee/internal/domain"

// ChannelObserver adapts domain.StateObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.StateChange
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.StateChange) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnStateChange sends the change to the channel (non-blocking if full).
// Services notify while holding their lock, so this must never wait.
func (o *ChannelObserver) OnStateChange(change domain.StateChange) {
	select {
	case o.ch <- change:
	default:
	}
}
