package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/skyrouteai/skyroute/internal/present"
	"github.com/skyrouteai/skyroute/internal/router"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsRequest is the incoming WebSocket message format. An empty session_id
// starts a new conversation; the reply carries the assigned ID.
type wsRequest struct {
	SessionID string `json:"session_id"`
	Content   string `json:"content"`
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string           `json:"type"` // "response" or "error"
	SessionID string           `json:"session_id"`
	Text      string           `json:"text"`
	Response  *router.Response `json:"response,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			s.sendWSError(conn, "", "invalid message format")
			continue
		}
		if req.Content == "" {
			s.sendWSError(conn, req.SessionID, "content is required")
			continue
		}

		sess, ok := s.sessions.get(req.SessionID)
		if !ok {
			if req.SessionID != "" {
				s.sendWSError(conn, req.SessionID, "unknown session")
				continue
			}
			sess = s.sessions.create()
		}

		resp := sess.ask(r.Context(), req.Content)
		s.sendWS(conn, wsResponse{
			Type:      "response",
			SessionID: sess.id,
			Text:      present.Text(resp),
			Response:  resp,
		})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, resp wsResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Printf("server: websocket write: %v", err)
	}
}

func (s *Server) sendWSError(conn *websocket.Conn, sessionID, message string) {
	s.sendWS(conn, wsResponse{Type: "error", SessionID: sessionID, Text: message})
}
