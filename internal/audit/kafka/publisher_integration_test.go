//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"bahay/internal/audit"
	"bahay/internal/audit/kafka"
	id "bahay/pkg/domain"
	"bahay/pkg/testutil/containers"
)

func TestPublisherRoundTrip(t *testing.T) {
	broker := containers.NewKafkaContainer(t).Broker
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	const topic = "bahay.audit.test"
	pub, err := kafka.New(ctx, []string{broker}, topic, logger)
	require.NoError(t, err)
	defer pub.Close()

	houseID := id.NewHouseID()
	event := audit.Event{
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		ActorID:   id.NewUserID(),
		Subject:   houseID.String(),
		Action:    audit.ActionPermitVerified,
		Reason:    "valid",
		RequestID: "req-123",
	}
	require.NoError(t, pub.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	fetches := consumer.PollFetches(fetchCtx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	assert.Equal(t, houseID.String(), string(records[0].Key))

	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event.Action, got.Action)
	assert.Equal(t, event.Subject, got.Subject)
	assert.Equal(t, event.Reason, got.Reason)
	assert.Equal(t, event.RequestID, got.RequestID)
}

func TestNewIsIdempotentOnExistingTopic(t *testing.T) {
	broker := containers.NewKafkaContainer(t).Broker
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	const topic = "bahay.audit.existing"
	first, err := kafka.New(ctx, []string{broker}, topic, logger)
	require.NoError(t, err)
	first.Close()

	second, err := kafka.New(ctx, []string{broker}, topic, logger)
	require.NoError(t, err)
	second.Close()
}
