package main

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finquote/quoting-portal/internal/infrastructure/config"
)

type fakeServer struct {
	started  chan struct{}
	stop     chan struct{}
	startErr error
	shutdown bool
}

func newFakeServer() *fakeServer {
	return &fakeServer{started: make(chan struct{}), stop: make(chan struct{})}
}

func (f *fakeServer) Start(string) error {
	close(f.started)
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stop
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdown = true
	close(f.stop)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{Port: "0", StoreDriver: config.DriverMemory, ShutdownTimeout: time.Second}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv := newFakeServer()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, testConfig(), zerolog.Nop()) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
		assert.True(t, srv.shutdown)
	case <-time.After(2 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServe_StartFailure(t *testing.T) {
	srv := newFakeServer()
	srv.startErr = errors.New("address already in use")

	err := serve(context.Background(), srv, testConfig(), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}

func TestOpenStore_Memory(t *testing.T) {
	st, err := openStore(context.Background(), testConfig(), zerolog.Nop())
	require.NoError(t, err)
	defer st.close()

	assert.NotNil(t, st.users)
	assert.NotNil(t, st.products)
	assert.NotNil(t, st.quotes)
	assert.Empty(t, st.checks)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = "sqlite"

	_, err := openStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
