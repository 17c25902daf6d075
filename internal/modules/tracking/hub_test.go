package tracking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ecowaste/internal/domain"
	"ecowaste/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	hub *Hub
	jwt *jwt.Service
	url string
}

func newServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(nil)
	jwtSvc := jwt.New("tracking-secret", time.Hour)
	router := gin.New()
	NewHandler(hub, jwtSvc, nil).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return &testServer{hub: hub, jwt: jwtSvc, url: "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/pickups"}
}

func (s *testServer) dial(t *testing.T, accountID int64, role string) *websocket.Conn {
	t.Helper()
	token, err := s.jwt.GenerateToken(accountID, role)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(s.url+"?token="+token, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) domain.PickupEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var e domain.PickupEvent
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func TestHub_RoutesToOwnerAndAdmins(t *testing.T) {
	s := newServer(t)
	owner := s.dial(t, 1, "user")
	ownerTab := s.dial(t, 1, "user")
	admin := s.dial(t, 2, "admin")
	stranger := s.dial(t, 3, "user")

	require.Eventually(t, func() bool { return s.hub.ConnectionCount() == 4 }, 2*time.Second, 10*time.Millisecond)

	s.hub.Publish(domain.PickupEvent{Type: domain.EventPickupStatusChanged, PickupID: 7, AccountID: 1, Status: domain.PickupAssigned})

	for _, conn := range []*websocket.Conn{owner, ownerTab, admin} {
		e := readEvent(t, conn)
		assert.Equal(t, domain.EventPickupStatusChanged, e.Type)
		assert.Equal(t, int64(7), e.PickupID)
		assert.Equal(t, domain.PickupAssigned, e.Status)
	}

	require.NoError(t, stranger.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err := stranger.ReadMessage()
	require.Error(t, err)
	netErr, ok := err.(interface{ Timeout() bool })
	require.True(t, ok, "expected a timeout, got %v", err)
	assert.True(t, netErr.Timeout())
}

func TestHub_AdminOwnEventDeliveredOnce(t *testing.T) {
	s := newServer(t)
	admin := s.dial(t, 5, "admin")
	require.Eventually(t, func() bool { return s.hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.hub.Publish(domain.PickupEvent{Type: domain.EventPickupCreated, PickupID: 1, AccountID: 5})
	s.hub.Publish(domain.PickupEvent{Type: domain.EventPickupPaid, PickupID: 1, AccountID: 5})

	assert.Equal(t, domain.EventPickupCreated, readEvent(t, admin).Type)
	assert.Equal(t, domain.EventPickupPaid, readEvent(t, admin).Type)
}

func TestHub_UnregistersOnDisconnect(t *testing.T) {
	s := newServer(t)
	conn := s.dial(t, 9, "user")
	require.Eventually(t, func() bool { return s.hub.ConnectionCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return s.hub.ConnectionCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// publishing to a gone subscriber is a no-op
	s.hub.Publish(domain.PickupEvent{Type: domain.EventPickupCreated, AccountID: 9})
}

func TestHandler_RejectsMissingOrBadToken(t *testing.T) {
	s := newServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(s.url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(s.url+"?token=garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
