package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bahay/internal/audit"
	auditstore "bahay/internal/audit/store"
	auditworker "bahay/internal/audit/worker"
	id "bahay/pkg/domain"
)

type failingSink struct{}

func (failingSink) Append(context.Context, audit.Event) error {
	return errors.New("sink down")
}

func testEvent(action audit.Action) audit.Event {
	return audit.Event{
		Timestamp: time.Now().UTC(),
		ActorID:   id.NewUserID(),
		Subject:   id.NewHouseID().String(),
		Action:    action,
	}
}

func TestRunFlushesBufferedEventsOnShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := auditstore.NewInMemory()

	inbox := make(chan audit.Event, 8)
	inbox <- testEvent(audit.ActionPermitVerified)
	inbox <- testEvent(audit.ActionPermitRejected)
	inbox <- testEvent(audit.ActionHouseDeleted)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := auditworker.New(inbox, logger, store)
	err := w.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	events := store.All()
	require.Len(t, events, 3)
	assert.Equal(t, audit.ActionPermitVerified, events[0].Action)
	assert.Equal(t, audit.ActionHouseDeleted, events[2].Action)
}

func TestRunSinkFailureDoesNotStallOthers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := auditstore.NewInMemory()

	inbox := make(chan audit.Event, 2)
	inbox <- testEvent(audit.ActionUserLogin)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := auditworker.New(inbox, logger, failingSink{}, store)
	err := w.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)

	require.Len(t, store.All(), 1)
	assert.Equal(t, audit.ActionUserLogin, store.All()[0].Action)
}
