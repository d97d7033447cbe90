package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// outboundBuffer bounds how many payloads may queue behind a slow client
// before senders start blocking.
const outboundBuffer = 16

// Writer serializes all outbound traffic for one connection. gorilla/websocket
// allows at most one concurrent writer per connection, so every goroutine that
// needs to send enqueues through Send and a single pump goroutine owns the
// write side.
type Writer struct {
	conn *websocket.Conn
	out  chan interface{}
	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// NewWriter starts the pump goroutine for conn and returns its Writer.
func NewWriter(conn *websocket.Conn) *Writer {
	w := &Writer{
		conn: conn,
		out:  make(chan interface{}, outboundBuffer),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.pump()
	return w
}

func (w *Writer) pump() {
	defer close(w.done)
	for {
		select {
		case <-w.quit:
			return
		case v := <-w.out:
			if err := WriteTyped(w.conn, v); err != nil {
				// Closing the connection unblocks any goroutine parked
				// in a read, so the handler winds down with the pump.
				w.conn.Close()
				return
			}
		}
	}
}

// Send enqueues one payload for the pump. It reports false once the pump has
// stopped; the payload is dropped in that case.
func (w *Writer) Send(v interface{}) bool {
	select {
	case <-w.done:
		return false
	case w.out <- v:
		return true
	}
}

// Stop terminates the pump and waits for it to exit. Queued payloads that the
// pump has not picked up yet are discarded.
func (w *Writer) Stop() {
	w.once.Do(func() { close(w.quit) })
	<-w.done
}
