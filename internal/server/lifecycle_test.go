package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func recordingService(name string, log *[]string, startErr, stopErr error) *FuncService {
	return &FuncService{
		ServiceName: name,
		OnStart: func(context.Context) error {
			*log = append(*log, "start "+name)
			return startErr
		},
		OnStop: func(context.Context) error {
			*log = append(*log, "stop "+name)
			return stopErr
		},
	}
}

func TestLifecycle_StartStopOrdering(t *testing.T) {
	var log []string
	lc := NewLifecycle(zap.NewNop())
	lc.Register(recordingService("db", &log, nil, nil))
	lc.Register(recordingService("http", &log, nil, nil))

	ctx := context.Background()
	require.NoError(t, lc.Start(ctx))
	require.NoError(t, lc.Stop(ctx))

	assert.Equal(t, []string{"start db", "start http", "stop http", "stop db"}, log)
}

func TestLifecycle_StartFailureRollsBack(t *testing.T) {
	var log []string
	lc := NewLifecycle(zap.NewNop())
	lc.Register(recordingService("db", &log, nil, nil))
	lc.Register(recordingService("http", &log, errors.New("port in use"), nil))

	err := lc.Start(context.Background())
	assert.ErrorContains(t, err, `starting service "http"`)
	// The already-started service is stopped; the failed one is not.
	assert.Equal(t, []string{"start db", "start http", "stop db"}, log)
}

func TestLifecycle_StopContinuesPastErrors(t *testing.T) {
	var log []string
	lc := NewLifecycle(zap.NewNop())
	lc.Register(recordingService("db", &log, nil, nil))
	lc.Register(recordingService("http", &log, nil, errors.New("hung connection")))

	ctx := context.Background()
	require.NoError(t, lc.Start(ctx))

	err := lc.Stop(ctx)
	assert.ErrorContains(t, err, `stopping service "http"`)
	assert.Contains(t, log, "stop db")
}

func TestFuncService_NilCallbacks(t *testing.T) {
	svc := &FuncService{ServiceName: "noop"}
	assert.Equal(t, "noop", svc.Name())
	assert.NoError(t, svc.Start(context.Background()))
	assert.NoError(t, svc.Stop(context.Background()))
}
