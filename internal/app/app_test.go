package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"command-logger/internal/adapter/httpapi"
	"command-logger/internal/adapter/logging"
	"command-logger/internal/domain/model"
)

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, model.CommandEvent) error { return nil }

func TestApp_ServesUntilCancelled(t *testing.T) {
	logger := logging.New(nil)
	cfg := httpapi.Config{Mode: gin.TestMode, MaxBodyBytes: 1024, MaxConnections: 4}
	server := httpapi.NewServer(cfg, httpapi.NewHandler(noopNotifier{}, logger, cfg), nil, logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- New(server, logger, Options{ShutdownTimeout: time.Second}).Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bot command logger is running.", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("app did not stop after cancellation")
	}
}

type failingServer struct{ err error }

func (f failingServer) Serve(net.Listener) error       { return f.err }
func (f failingServer) Shutdown(context.Context) error { return nil }

func TestApp_ServeErrorIsReturned(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	boom := errors.New("accept failed")
	err = New(failingServer{err: boom}, logging.New(nil), Options{}).Serve(context.Background(), ln)

	assert.ErrorIs(t, err, boom)
}

func TestApp_RunReportsListenError(t *testing.T) {
	err := New(failingServer{}, logging.New(nil), Options{Addr: "256.0.0.1:0"}).Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on 256.0.0.1:0")
}
