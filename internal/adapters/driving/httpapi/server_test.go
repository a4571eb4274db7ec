package httpapi

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer builds a server over fresh mocks and returns both.
func newTestServer(t *testing.T) (*Server, *Ports) {
	t.Helper()
	ports := &Ports{
		Search:     &mockSearchService{},
		Candidates: &mockCandidateService{},
		History:    &mockHistoryService{},
		Recommend:  &mockRecommendService{},
	}
	server, err := NewServer(ports)
	require.NoError(t, err)
	return server, ports
}

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		ports := &Ports{
			Candidates: &mockCandidateService{},
			History:    &mockHistoryService{},
			Recommend:  &mockRecommendService{},
		}
		server, err := NewServer(ports)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, _ := newTestServer(t)
		assert.NotNil(t, server)
		assert.NotNil(t, server.Handler())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("empty ports reports search first", func(t *testing.T) {
		ports := &Ports{}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("missing candidate service", func(t *testing.T) {
		ports := &Ports{
			Search:    &mockSearchService{},
			History:   &mockHistoryService{},
			Recommend: &mockRecommendService{},
		}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingCandidateService)
	})

	t.Run("missing history service", func(t *testing.T) {
		ports := &Ports{
			Search:     &mockSearchService{},
			Candidates: &mockCandidateService{},
			Recommend:  &mockRecommendService{},
		}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingHistoryService)
	})

	t.Run("missing recommend service", func(t *testing.T) {
		ports := &Ports{
			Search:     &mockSearchService{},
			Candidates: &mockCandidateService{},
			History:    &mockHistoryService{},
		}
		err := ports.Validate()
		assert.ErrorIs(t, err, ErrMissingRecommendService)
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Search:     &mockSearchService{},
			Candidates: &mockCandidateService{},
			History:    &mockHistoryService{},
			Recommend:  &mockRecommendService{},
		}
		err := ports.Validate()
		assert.NoError(t, err)
	})
}

func TestListenAndServe_StopsOnContextCancel(t *testing.T) {
	server, _ := newTestServer(t)

	port, err := findFreePort(t)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(ctx, fmt.Sprintf("127.0.0.1:%d", port))
	}()

	// Give the listener a moment to come up, then stop it.
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down after context cancel")
	}
}

// findFreePort asks the kernel for a free port and releases it again.
func findFreePort(t *testing.T) (int, error) {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer listener.Close() //nolint:errcheck // test helper
	return listener.Addr().(*net.TCPAddr).Port, nil
}
