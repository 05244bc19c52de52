package live

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"

	"venueops/internal/domain"
)

// dialPair spins up a server that registers every incoming connection on the
// hub and returns the client side.
func dialPair(t *testing.T, h *Hub, id string, branchID int64) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Register(id, branchID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	assert.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestHub_BroadcastToBranch(t *testing.T) {
	h := NewHub()
	client := dialPair(t, h, "s1", 1)

	// registration happens on the server goroutine
	assert.Eventually(t, func() bool { return h.SessionCount() == 1 },
		time.Second, 10*time.Millisecond)

	h.ScheduleChanged(domain.KindTable, 1, "2024-06-01")

	client.SetReadDeadline(time.Now().Add(time.Second))
	var ev ChangeEvent
	assert.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, domain.KindTable, ev.Kind)
	assert.Equal(t, int64(1), ev.BranchID)
	assert.Equal(t, "2024-06-01", ev.EventDate)
}

func TestHub_ConcurrentBroadcasts(t *testing.T) {
	h := NewHub()
	client := dialPair(t, h, "s-many", 1)

	assert.Eventually(t, func() bool { return h.SessionCount() == 1 },
		time.Second, 10*time.Millisecond)

	// every committed mutation fans out from its own request goroutine;
	// frames must arrive intact
	const writers = 16
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.ScheduleChanged(domain.KindTable, 1, "2024-06-01")
		}()
	}
	wg.Wait()

	for i := 0; i < writers; i++ {
		client.SetReadDeadline(time.Now().Add(time.Second))
		var ev ChangeEvent
		assert.NoError(t, client.ReadJSON(&ev))
		assert.Equal(t, int64(1), ev.BranchID)
	}
	assert.Equal(t, 1, h.SessionCount())
}

func TestHub_OtherBranchStaysQuiet(t *testing.T) {
	h := NewHub()
	client := dialPair(t, h, "s2", 2)

	assert.Eventually(t, func() bool { return h.SessionCount() == 1 },
		time.Second, 10*time.Millisecond)

	h.ScheduleChanged(domain.KindTable, 1, "2024-06-01")

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	var ev ChangeEvent
	assert.Error(t, client.ReadJSON(&ev)) // deadline hits, nothing was sent
}

func TestHub_Unregister(t *testing.T) {
	h := NewHub()
	dialPair(t, h, "s3", 1)

	assert.Eventually(t, func() bool { return h.SessionCount() == 1 },
		time.Second, 10*time.Millisecond)

	h.Unregister("s3")
	assert.Equal(t, 0, h.SessionCount())

	// a second unregister of the same id is a no-op
	h.Unregister("s3")
	assert.Equal(t, 0, h.SessionCount())
}

func TestHub_ReconnectReplacesSession(t *testing.T) {
	h := NewHub()
	dialPair(t, h, "s4", 1)
	assert.Eventually(t, func() bool { return h.SessionCount() == 1 },
		time.Second, 10*time.Millisecond)

	second := dialPair(t, h, "s4", 1)
	assert.Eventually(t, func() bool {
		second.SetReadDeadline(time.Now().Add(50 * time.Millisecond))
		h.ScheduleChanged(domain.KindQuest, 1, "2024-06-02")
		var ev ChangeEvent
		return second.ReadJSON(&ev) == nil
	}, 2*time.Second, 50*time.Millisecond)

	// the id maps to exactly one live session, not two
	assert.Equal(t, 1, h.SessionCount())
}
