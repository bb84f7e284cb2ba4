package app

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thejerf/suture/v4"
)

// fakeHTTPServer blocks in ListenAndServe until Shutdown is called.
type fakeHTTPServer struct {
	listenErr     error
	shutdownErr   error
	started       chan struct{}
	stopCh        chan struct{}
	shutdownCount atomic.Int32
}

func newFakeHTTPServer() *fakeHTTPServer {
	return &fakeHTTPServer{
		started: make(chan struct{}, 1),
		stopCh:  make(chan struct{}),
	}
}

func (f *fakeHTTPServer) ListenAndServe() error {
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.stopCh
	return http.ErrServerClosed
}

func (f *fakeHTTPServer) Shutdown(ctx context.Context) error {
	f.shutdownCount.Add(1)
	close(f.stopCh)
	return f.shutdownErr
}

var _ suture.Service = (*HTTPServerService)(nil)

func TestHTTPServerService_ShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	service := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()

	<-server.started
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("service did not stop")
	}
	assert.Equal(t, int32(1), server.shutdownCount.Load())
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	server.listenErr = errors.New("address already in use")
	service := NewHTTPServerService(server, time.Second)

	err := service.Serve(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
	assert.Equal(t, int32(0), server.shutdownCount.Load())
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	t.Parallel()

	server := newFakeHTTPServer()
	server.shutdownErr = assert.AnError
	service := NewHTTPServerService(server, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- service.Serve(ctx) }()

	<-server.started
	cancel()

	err := <-done
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHTTPServerService_DefaultsAndName(t *testing.T) {
	t.Parallel()

	service := NewHTTPServerService(newFakeHTTPServer(), 0)
	assert.Equal(t, 10*time.Second, service.shutdownTimeout)
	assert.Equal(t, "admin-http-server", service.String())
}

func TestEventTypeName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "service_panic", eventTypeName(suture.EventTypeServicePanic))
	assert.Equal(t, "backoff", eventTypeName(suture.EventTypeBackoff))
	assert.Equal(t, "unknown", eventTypeName(suture.EventType(99)))
}
