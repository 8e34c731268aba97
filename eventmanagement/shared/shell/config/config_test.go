package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsaloi/value-driven-domain-pattern/eventmanagement/shared/shell/config"
)

func Test_LoadPostgresConfigFrom_Defaults(t *testing.T) {
	// act
	cfg, err := config.LoadPostgresConfigFrom(map[string]string{})

	// assert
	require.NoError(t, err)
	assert.Contains(t, cfg.DSN, "localhost:5432")
	assert.Equal(t, int32(8), cfg.MaxConns)
	assert.Equal(t, int32(2), cfg.MinConns)
	assert.Equal(t, 50, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnIdleTime)
	assert.Equal(t, time.Minute, cfg.HealthCheckPeriod)
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.False(t, cfg.HasReplica())
}

func Test_LoadPostgresConfigFrom_Overrides(t *testing.T) {
	// arrange
	environ := map[string]string{
		"EVENTMANAGEMENT_PG_DSN":             "postgres://u:p@db:5432/events",
		"EVENTMANAGEMENT_PG_REPLICA_DSN":     "postgres://u:p@replica:5432/events",
		"EVENTMANAGEMENT_PG_MAX_CONNS":       "20",
		"EVENTMANAGEMENT_PG_CONNECT_TIMEOUT": "2s",
	}

	// act
	cfg, err := config.LoadPostgresConfigFrom(environ)

	// assert
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/events", cfg.DSN)
	assert.True(t, cfg.HasReplica())
	assert.Equal(t, int32(20), cfg.MaxConns)
	assert.Equal(t, 2*time.Second, cfg.ConnectTimeout)
}

func Test_LoadPostgresConfigFrom_RejectsInvalidValues(t *testing.T) {
	testCases := map[string]map[string]string{
		"not a number":          {"EVENTMANAGEMENT_PG_MAX_CONNS": "many"},
		"zero max conns":        {"EVENTMANAGEMENT_PG_MAX_CONNS": "0"},
		"min above max":         {"EVENTMANAGEMENT_PG_MIN_CONNS": "9"},
		"zero open connections": {"EVENTMANAGEMENT_PG_MAX_OPEN_CONNS": "0"},
	}

	for name, environ := range testCases {
		t.Run(name, func(t *testing.T) {
			// act
			_, err := config.LoadPostgresConfigFrom(environ)

			// assert
			assert.ErrorIs(t, err, config.ErrInvalidPostgresConfig)
		})
	}
}

func Test_PGXPoolConfig_AppliesPoolSettings(t *testing.T) {
	// arrange
	cfg, err := config.LoadPostgresConfigFrom(map[string]string{"EVENTMANAGEMENT_PG_MAX_CONNS": "12"})
	require.NoError(t, err)

	// act
	poolConfig, err := config.PGXPoolConfig(cfg, cfg.DSN)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(12), poolConfig.MaxConns)
	assert.Equal(t, int32(2), poolConfig.MinConns)
	assert.Equal(t, time.Minute, poolConfig.HealthCheckPeriod)
	assert.Equal(t, 5*time.Second, poolConfig.ConnConfig.ConnectTimeout)
	assert.Equal(t, "localhost", poolConfig.ConnConfig.Host)
}

func Test_PGXPoolConfig_RejectsMalformedDSN(t *testing.T) {
	// arrange
	cfg, err := config.LoadPostgresConfigFrom(map[string]string{})
	require.NoError(t, err)

	// act
	_, err = config.PGXPoolConfig(cfg, "postgres://%zz")

	// assert
	assert.ErrorIs(t, err, config.ErrInvalidPostgresConfig)
}

func Test_NewObservabilityProviders_RegistersProviders(t *testing.T) {
	// act
	providers, err := config.NewObservabilityProviders(context.Background(), config.ObservabilityConfig{
		ServiceName:    "eventmanagement-test",
		ServiceVersion: "test",
	})

	// assert
	require.NoError(t, err)
	assert.NotNil(t, providers.TracerProvider)
	assert.NotNil(t, providers.MeterProvider)
	assert.NotNil(t, providers.Resource)

	// shutdown may fail to flush to a collector that isn't there
	_ = providers.Shutdown()
}
