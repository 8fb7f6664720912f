package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestHubDeliversToAllUserConnections(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	userID := uuid.New()
	other := uuid.New()

	a := &Client{ID: "a", UserID: userID, Send: make(chan []byte, 1)}
	b := &Client{ID: "b", UserID: userID, Send: make(chan []byte, 1)}
	c := &Client{ID: "c", UserID: other, Send: make(chan []byte, 1)}

	hub.RegisterClient(a)
	hub.RegisterClient(b)
	hub.RegisterClient(c)

	// let Run finish the map inserts
	time.Sleep(50 * time.Millisecond)

	hub.SendToUser(userID, map[string]string{"type": "notification"})

	for _, cl := range []*Client{a, b} {
		select {
		case msg := <-cl.Send:
			if string(msg) != `{"type":"notification"}` {
				t.Errorf("client %s got %s", cl.ID, msg)
			}
		case <-time.After(time.Second):
			t.Fatalf("client %s got no message", cl.ID)
		}
	}

	select {
	case msg := <-c.Send:
		t.Errorf("other user got %s", msg)
	default:
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	cl := &Client{ID: "x", UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.RegisterClient(cl)
	hub.UnregisterClient(cl)

	select {
	case _, ok := <-cl.Send:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}
}
