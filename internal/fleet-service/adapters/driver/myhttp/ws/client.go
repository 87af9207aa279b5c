package ws

import (
	"context"

	websocketdto "fleet-ops/internal/fleet-service/core/domain/websocket_dto"

	"github.com/gorilla/websocket"
)

const egressBuffer = 16

type Client struct {
	ctx    context.Context
	conn   *websocket.Conn
	dis    *Dispatcher
	egress chan websocketdto.Event
	userId string
}

func NewClient(ctx context.Context, conn *websocket.Conn, dis *Dispatcher, userId string) *Client {
	return &Client{
		ctx:    ctx,
		conn:   conn,
		dis:    dis,
		egress: make(chan websocketdto.Event, egressBuffer),
		userId: userId,
	}
}

// ReadMessage drains the connection. The board is push-only, so
// inbound payloads are discarded, reading only detects the close.
func (c *Client) ReadMessage() {
	defer c.dis.RemoveClient(c)

	c.conn.SetReadLimit(1024)

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.dis.log.Action("readMessage").Warn("unexpected close", "user-id", c.userId)
			}
			break
		}
	}
}

func (c *Client) WriteMessage() {
	defer c.dis.RemoveClient(c)

	for {
		select {
		case <-c.ctx.Done():
			return
		case event, ok := <-c.egress:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}
