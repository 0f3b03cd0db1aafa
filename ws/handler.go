package ws

import (
	"encoding/json"
	"net/http"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Channel join/leave messages from the client. table_number is only
// meaningful for the table actions.
type clientMessage struct {
	Action      string `json:"action"`
	TableNumber int    `json:"table_number"`
}

// HandleWebSocket upgrades the connection and serves join/leave messages
// until the client disconnects. Disconnecting drops every subscription.
func (h *Hub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}

	s := h.NewSession()
	h.log.Debug("session connected", "sessionID", s.ID)

	go h.writePump(s, conn)
	h.readLoop(s, conn)
}

func (h *Hub) writePump(s *Session, conn *websocket.Conn) {
	for ev := range s.Outbound {
		if err := conn.WriteJSON(ev); err != nil {
			h.log.Debug("ws write failed", "sessionID", s.ID, "error", err)
			conn.Close()
			// Keep draining so CloseSession never blocks on a full buffer.
			for range s.Outbound {
			}
			return
		}
	}
	conn.Close()
}

func (h *Hub) readLoop(s *Session, conn *websocket.Conn) {
	defer func() {
		h.CloseSession(s)
		h.log.Debug("session disconnected", "sessionID", s.ID)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.log.Debug("invalid ws payload", "sessionID", s.ID, "error", err)
			continue
		}

		switch msg.Action {
		case "join_table":
			if msg.TableNumber > 0 {
				h.Subscribe(s, services.TableChannel(msg.TableNumber))
			}
		case "leave_table":
			if msg.TableNumber > 0 {
				h.Unsubscribe(s, services.TableChannel(msg.TableNumber))
			}
		case "join_admin":
			h.Subscribe(s, services.ChannelAdmin)
		case "leave_admin":
			h.Unsubscribe(s, services.ChannelAdmin)
		case "join_customers":
			h.Subscribe(s, services.ChannelCustomers)
		case "leave_customers":
			h.Unsubscribe(s, services.ChannelCustomers)
		default:
			h.log.Debug("unknown ws action", "sessionID", s.ID, "action", msg.Action)
		}
	}
}
