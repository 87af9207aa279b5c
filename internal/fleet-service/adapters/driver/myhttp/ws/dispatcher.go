package ws

import (
	"context"
	"net/http"
	"sync"

	websocketdto "fleet-ops/internal/fleet-service/core/domain/websocket_dto"
	"fleet-ops/internal/mylogger"

	"github.com/gorilla/websocket"
)

// ================================================================================================== //
// websocketUpgrader is used to upgrade incomming HTTP requests into a persitent websocket connection //
// ================================================================================================== //
var websocketUpgrader = websocket.Upgrader{
	// TODO: add checkOrigin
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ClientList is a map used to help manage a map of clients
type ClientList map[*Client]bool

// Dispatcher fans trip status events out to every connected dispatch
// board client.
type Dispatcher struct {
	clients ClientList
	sync.RWMutex
	ctx context.Context
	log mylogger.Logger
}

func NewDispatcher(ctx context.Context, log mylogger.Logger) *Dispatcher {
	return &Dispatcher{
		clients: make(ClientList),
		ctx:     ctx,
		log:     log,
	}
}

// BoardHandler upgrades the request and registers the client on the
// board. Auth already happened in the middleware chain.
func (d *Dispatcher) BoardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := d.log.Action("boardHandler")

		conn, err := websocketUpgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("cannot upgrade", err)
			return
		}

		// The client must outlive this request: net/http cancels
		// r.Context() as soon as the handler returns, which is
		// immediately. The connection is bound to the app lifetime and
		// torn down by the peer closing or shutdown.
		client := NewClient(d.ctx, conn, d, r.Header.Get("X-UserId"))
		d.AddClient(client)
		log.Info("board client connected", "user-id", client.userId)

		go client.ReadMessage()
		go client.WriteMessage()
	}
}

// Broadcast queues the event for every connected client. A client
// whose egress is backed up gets skipped, the board is best-effort.
func (d *Dispatcher) Broadcast(event websocketdto.Event) {
	d.RLock()
	defer d.RUnlock()

	for client := range d.clients {
		select {
		case client.egress <- event:
		default:
		}
	}
}

func (d *Dispatcher) AddClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	d.clients[client] = true
}

func (d *Dispatcher) RemoveClient(client *Client) {
	d.Lock()
	defer d.Unlock()

	if _, ok := d.clients[client]; ok {
		client.conn.Close()
		delete(d.clients, client)
	}
}
