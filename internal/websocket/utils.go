package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeTimeout bounds one outbound frame; a monitor client that stalls
	// this long gets disconnected rather than backing up the pump.
	writeTimeout = 10 * time.Second

	// readIdleTimeout is how long an admin dashboard may sit silent before
	// the connection is considered abandoned. Clients ping well inside it.
	readIdleTimeout = 5 * time.Minute
)

// WriteTyped sends one typed event frame. Only the connection's Writer pump
// may call this; concurrent writers corrupt frames.
func WriteTyped(conn *websocket.Conn, v interface{}) error {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(v)
}

// ReadJSON reads and decodes the next client message, refreshing the idle
// deadline.
func ReadJSON(conn *websocket.Conn, v interface{}) error {
	conn.SetReadDeadline(time.Now().Add(readIdleTimeout))
	return conn.ReadJSON(v)
}
