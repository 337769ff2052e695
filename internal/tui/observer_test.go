package tui

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestChannelObserverDoesNotBlock(t *testing.T) {
	ch := make(chan domain.StateChange, 1)
	obs := NewChannelObserver(ch)

	obs.OnStateChange(domain.StateChange{Kind: domain.ChangeResults, Query: "heat"})
	// Channel is full; this must return immediately
	obs.OnStateChange(domain.StateChange{Kind: domain.ChangeRecents})

	assert.Equal(t, domain.StateChange{Kind: domain.ChangeResults, Query: "heat"}, <-ch)
	assert.Empty(t, ch)
}

func TestWaitForChangeCmd(t *testing.T) {
	assert.Nil(t, WaitForChangeCmd(nil))

	ch := make(chan domain.StateChange, 1)
	ch <- domain.StateChange{Kind: domain.ChangeDetail, ID: "tt0113277"}

	msg := WaitForChangeCmd(ch)()
	assert.Equal(t, StateChangedMsg{Change: domain.StateChange{Kind: domain.ChangeDetail, ID: "tt0113277"}}, msg)

	close(ch)
	assert.Nil(t, WaitForChangeCmd(ch)())
}
