package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"
	"testing"
	"time"

	"github.com/HMasataka/serve/internal/server"
	mock_server "github.com/HMasataka/serve/internal/server/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	io.WriteString(w, "ok")
})

// startServer listens on a loopback port and serves until the returned
// cancel func is called. The returned channel yields Serve's result.
func startServer(t *testing.T, opts ...server.Option) (*server.Server, context.CancelFunc, <-chan error) {
	t.Helper()

	s := server.New("127.0.0.1:0", okHandler, opts...)
	require.NoError(t, s.Listen(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	t.Cleanup(cancel)

	return s, cancel, done
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

func TestServer_Serve(t *testing.T) {
	s, _, _ := startServer(t)

	status, body := get(t, s.URL()+"/anything")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestServer_URL(t *testing.T) {
	t.Run("Listen前は空", func(t *testing.T) {
		s := server.New("127.0.0.1:0", okHandler)
		assert.Nil(t, s.Addr())
		assert.Empty(t, s.URL())
	})

	t.Run("全インターフェースはlocalhostで表示", func(t *testing.T) {
		s := server.New(":0", okHandler)
		require.NoError(t, s.Listen(context.Background()))
		defer s.Close()

		port := s.Addr().(*net.TCPAddr).Port
		assert.Equal(t, "http://"+net.JoinHostPort("localhost", itoa(port)), s.URL())
	})
}

func TestServer_BindConflict(t *testing.T) {
	first, _, _ := startServer(t)

	second := server.New(first.Addr().String(), okHandler)
	err := second.Run(context.Background())

	var bindErr *server.BindError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, first.Addr().String(), bindErr.Addr)
	assert.ErrorIs(t, err, syscall.EADDRINUSE)
	assert.Contains(t, err.Error(), "bind ")

	t.Run("最初のサーバーは応答し続ける", func(t *testing.T) {
		status, _ := get(t, first.URL()+"/")
		assert.Equal(t, http.StatusOK, status)
	})
}

func TestServer_Shutdown(t *testing.T) {
	s, cancel, done := startServer(t)
	addr := s.Addr().String()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	t.Run("ポートが解放される", func(t *testing.T) {
		ln, err := net.Listen("tcp", addr)
		require.NoError(t, err)
		ln.Close()
	})

	t.Run("Closeは何度呼んでもよい", func(t *testing.T) {
		assert.NoError(t, s.Close())
		assert.NoError(t, s.Close())
	})
}

func TestServer_ServeWithoutListen(t *testing.T) {
	s := server.New("127.0.0.1:0", okHandler)

	err := s.Serve(context.Background())

	assert.Error(t, err)
}

func TestServer_CloseBeforeServe(t *testing.T) {
	s := server.New("127.0.0.1:0", okHandler)
	require.NoError(t, s.Listen(context.Background()))
	require.NoError(t, s.Close())

	done := make(chan error, 1)
	go func() { done <- s.Serve(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after close")
	}
}

func TestServer_Announcer(t *testing.T) {
	ctrl := gomock.NewController(t)
	announcer := mock_server.NewMockAnnouncer(ctrl)

	urls := make(chan string, 1)
	gomock.InOrder(
		announcer.EXPECT().Listening(gomock.Any()).Do(func(url string) { urls <- url }),
		announcer.EXPECT().Stopped(),
	)

	s, cancel, done := startServer(t, server.WithAnnouncer(announcer))

	select {
	case url := <-urls:
		assert.Equal(t, s.URL(), url)
	case <-time.After(5 * time.Second):
		t.Fatal("listening was not announced")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestBindError(t *testing.T) {
	inner := errors.New("permission denied")
	err := &server.BindError{Addr: ":80", Err: inner}

	assert.Equal(t, "bind :80: permission denied", err.Error())
	assert.ErrorIs(t, err, inner)
}
