package websocket

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// Concurrent senders (the results relay plus the pong path) must not
// interleave frames on the wire. Every frame the client reads has to decode
// cleanly and the per-sender counts have to add up.
func TestWriterSerializesConcurrentSenders(t *testing.T) {
	const senders = 4
	const perSender = 25

	upgrader := websocket.Upgrader{}
	done := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		w := NewWriter(conn)
		defer w.Stop()

		var wg sync.WaitGroup
		for i := 0; i < senders; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				for j := 0; j < perSender; j++ {
					payload, _ := json.Marshal(map[string]int{"sender": id})
					if !w.Send(ResultEvent{Event: EventResult, Payload: payload}) {
						t.Errorf("send rejected while pump alive")
						return
					}
				}
			}(i)
		}
		wg.Wait()
		close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	counts := make(map[int]int)
	for n := 0; n < senders*perSender; n++ {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		var ev ResultEvent
		if err := conn.ReadJSON(&ev); err != nil {
			t.Fatalf("frame %d unreadable: %v", n, err)
		}
		if ev.Event != EventResult {
			t.Fatalf("frame %d: event = %q, want %q", n, ev.Event, EventResult)
		}
		var body struct {
			Sender int `json:"sender"`
		}
		if err := json.Unmarshal(ev.Payload, &body); err != nil {
			t.Fatalf("frame %d payload corrupt: %v", n, err)
		}
		counts[body.Sender]++
	}

	<-done
	for id := 0; id < senders; id++ {
		if counts[id] != perSender {
			t.Fatalf("sender %d delivered %d frames, want %d", id, counts[id], perSender)
		}
	}
}

func TestWriterSendAfterStop(t *testing.T) {
	upgrader := websocket.Upgrader{}
	writers := make(chan *Writer, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		writers <- NewWriter(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	w := <-writers
	w.Stop()
	if w.Send(PongResponse{Event: EventPong}) {
		t.Fatal("send accepted after stop")
	}
}
