package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)

	level, err = ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestInit_ExportsMetersToRegistry(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	var logs bytes.Buffer

	instruments, shutdown, err := Init(ctx, Config{
		ServiceName: "orders-test",
		Environment: "test",
		LogLevel:    "debug",
		Registerer:  reg,
		LogOutput:   &logs,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = shutdown(context.Background()) })

	counter, err := instruments.Meter("test").Int64Counter("orders.service.created")
	require.NoError(t, err)
	counter.Add(ctx, 2)

	families, err := reg.Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		name := f.GetName()
		if strings.HasPrefix(name, "orders") && strings.Contains(name, "created") {
			found = true
		}
	}
	assert.True(t, found, "counter not exported to the registry")

	instruments.Logger.Debug("probe")
	assert.Contains(t, logs.String(), `"service":"orders-test"`)
}
