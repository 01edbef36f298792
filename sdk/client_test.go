package sdk

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lox/blackjackforbots/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T) string {
	t.Helper()
	srv, err := server.NewServer(server.Config{Seed: 11, BetLevels: 5})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		srv.Stop()
		ts.Close()
	})
	return ts.URL
}

func TestClientRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Dial(ctx, startServer(t), nil)
	require.NoError(t, err)
	defer client.Close()

	spec, err := client.Spec(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, spec.BetLevels)
	assert.Equal(t, ObservationSize, spec.ObservationSize)
	assert.NotEmpty(t, spec.SessionID)

	for range 20 {
		obs, err := client.Reset(ctx)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, obs[2], 2.0)

		text, err := client.Render(ctx)
		require.NoError(t, err)
		assert.Contains(t, text, "Dealer's hand")

		result, err := client.Step(ctx, 4)
		require.NoError(t, err)
		assert.True(t, result.Done)
		assert.Less(t, result.Observation[1], 1.0)
	}
}

func TestClientErrors(t *testing.T) {
	ctx := context.Background()

	client, err := Dial(ctx, startServer(t), nil)
	require.NoError(t, err)
	defer client.Close()

	_, err = client.Step(ctx, 0)
	var serverErr *Error
	require.True(t, errors.As(err, &serverErr), "got %v", err)
	assert.Equal(t, "round_not_dealt", serverErr.Code)

	_, err = client.Reset(ctx)
	require.NoError(t, err)

	_, err = client.Step(ctx, 5)
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, "bet_out_of_range", serverErr.Code)
}

func TestDialBadURL(t *testing.T) {
	_, err := Dial(context.Background(), "://nope", nil)
	assert.Error(t, err)
}
