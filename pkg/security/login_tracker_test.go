package security

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoginTrackerInMemory(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.InfoLevel)
	lt := NewLoginTracker(LoginTrackerConfig{MaxAttempts: 2, AttemptWindow: time.Minute, BlockDuration: time.Minute}, nil, NewAuditLoggerWithCore(core))

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	lt.now = func() time.Time { return clock }

	blocked, err := lt.RecordFailure(ctx, "user:alice")
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, err = lt.RecordFailure(ctx, "user:alice")
	require.NoError(t, err)
	assert.True(t, blocked)

	isBlocked, err := lt.IsBlocked(ctx, "user:alice")
	require.NoError(t, err)
	assert.True(t, isBlocked)

	isBlocked, _ = lt.IsBlocked(ctx, "user:bob")
	assert.False(t, isBlocked)

	clock = clock.Add(2 * time.Minute)
	isBlocked, _ = lt.IsBlocked(ctx, "user:alice")
	assert.False(t, isBlocked, "blocks expire")

	assert.Equal(t, 2, logs.FilterMessage(string(EventLoginFailed)).Len())
	assert.Equal(t, 1, logs.FilterMessage(string(EventBlockCreated)).Len())
	for _, entry := range logs.All() {
		assert.NotContains(t, entry.ContextMap()["subject"], "alice", "identities are hashed")
	}
}

func TestLoginTrackerWindowAndClear(t *testing.T) {
	ctx := context.Background()
	lt := NewLoginTracker(LoginTrackerConfig{MaxAttempts: 2, AttemptWindow: time.Minute}, nil, nil)

	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	lt.now = func() time.Time { return clock }

	_, _ = lt.RecordFailure(ctx, "company:acme")
	clock = clock.Add(2 * time.Minute)
	blocked, _ := lt.RecordFailure(ctx, "company:acme")
	assert.False(t, blocked, "failures outside the window are not counted")

	require.NoError(t, lt.Clear(ctx, "company:acme"))
	blocked, _ = lt.RecordFailure(ctx, "company:acme")
	assert.False(t, blocked)
}

func TestNewLoginTrackerDefaults(t *testing.T) {
	lt := NewLoginTracker(LoginTrackerConfig{}, nil, nil)
	assert.Equal(t, DefaultLoginTrackerConfig(), lt.config)
}
