package srv

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	order []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = append(r.order, s)
}

type fakeService struct {
	name    string
	rec     *recorder
	started chan struct{}
	err     error
	ctxErr  error
}

func (f *fakeService) Start(ctx context.Context) error {
	close(f.started)
	return nil
}

func (f *fakeService) Shutdown(ctx context.Context) error {
	f.ctxErr = ctx.Err()
	f.rec.add(f.name)
	return f.err
}

func TestShutdownServices_ReverseOrderWithLiveContext(t *testing.T) {
	t.Parallel()
	rec := &recorder{}
	a := &fakeService{name: "db", rec: rec, started: make(chan struct{})}
	b := &fakeService{name: "http", rec: rec, started: make(chan struct{}), err: errors.New("boom")}
	services := []Service{a, b}

	ctx, cancel := context.WithCancel(context.Background())
	StartServices(ctx, services)

	for _, s := range []*fakeService{a, b} {
		select {
		case <-s.started:
		case <-time.After(time.Second):
			t.Fatal("service not started")
		}
	}

	cancel()
	ShutdownServices(ctx, services)

	assert.Equal(t, []string{"http", "db"}, rec.order)
	require.NoError(t, a.ctxErr)
	require.NoError(t, b.ctxErr)
}

func TestNewCleanup(t *testing.T) {
	t.Parallel()
	called := false
	svc := NewCleanup("database", func() error {
		called = true
		return nil
	})

	require.NoError(t, svc.Start(context.Background()))
	assert.False(t, called)
	require.NoError(t, svc.Shutdown(context.Background()))
	assert.True(t, called)
	assert.Equal(t, "cleanup(database)", serviceName(svc))

	assert.NoError(t, NewCleanup("nothing", nil).Shutdown(context.Background()))
}

func TestNewCleanup_ErrorNamesResource(t *testing.T) {
	t.Parallel()
	errLocked := errors.New("database is locked")

	err := NewCleanup("database", func() error { return errLocked }).Shutdown(context.Background())

	require.ErrorIs(t, err, errLocked)
	assert.EqualError(t, err, "release database: database is locked")
}

func TestServiceName_FallsBackToType(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "*srv.fakeService", serviceName(&fakeService{}))
}
