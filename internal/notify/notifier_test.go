package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushReplacesMessage(t *testing.T) {
	n := New(time.Minute)
	defer n.Close()

	n.Push(LevelInfo, "saved")
	n.Push(LevelError, "save failed")

	msg := n.Current()
	require.NotNil(t, msg)
	assert.Equal(t, LevelError, msg.Level)
	assert.Equal(t, "save failed", msg.Text)
}

func TestMessageAutoDismisses(t *testing.T) {
	n := New(20 * time.Millisecond)
	defer n.Close()

	n.Push(LevelInfo, "saved")
	require.NotNil(t, n.Current())

	assert.Eventually(t, func() bool { return n.Current() == nil },
		time.Second, 5*time.Millisecond)
}

func TestNewerMessageSurvivesOldTimer(t *testing.T) {
	n := New(20 * time.Millisecond)
	defer n.Close()

	n.Push(LevelInfo, "first")
	n.Push(LevelInfo, "second")

	// The first message's timer must not clear the second message early;
	// the second eventually dismisses on its own schedule.
	time.Sleep(10 * time.Millisecond)
	msg := n.Current()
	require.NotNil(t, msg)
	assert.Equal(t, "second", msg.Text)
}

func TestCloseClearsEverything(t *testing.T) {
	n := New(time.Minute)
	n.Push(LevelInfo, "saved")
	n.Close()
	assert.Nil(t, n.Current())
}

func TestZeroTTLUsesDefault(t *testing.T) {
	n := New(0)
	defer n.Close()
	n.Push(LevelInfo, "saved")
	assert.NotNil(t, n.Current())
}
