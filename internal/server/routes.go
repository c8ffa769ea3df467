package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/skyrouteai/skyroute/internal/present"
	"github.com/skyrouteai/skyroute/internal/router"
)

// askRequest is the body of POST /api/ask and /api/sessions/{id}/ask.
type askRequest struct {
	Utterance string `json:"utterance"`
}

// askReply wraps the structured response with a pre-rendered text form so
// thin clients don't have to format results themselves.
type askReply struct {
	SessionID string           `json:"session_id,omitempty"`
	Text      string           `json:"text"`
	Response  *router.Response `json:"response"`
}

// handleAsk answers a one-shot question with no conversation memory.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAsk(w, r)
	if !ok {
		return
	}
	resp := s.sessions.newRouter().Handle(r.Context(), req.Utterance)
	text, ok := renderAnswer(w, r, resp)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, askReply{Text: text, Response: resp})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.create()
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": sess.id})
}

func (s *Server) handleSessionAsk(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessions.get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	req, ok := decodeAsk(w, r)
	if !ok {
		return
	}
	resp := sess.ask(r.Context(), req.Utterance)
	text, ok := renderAnswer(w, r, resp)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, askReply{
		SessionID: sess.id,
		Text:      text,
		Response:  resp,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.remove(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// renderAnswer formats the answer per the optional ?format= query
// parameter: text (default), markdown, or html.
func renderAnswer(w http.ResponseWriter, r *http.Request, resp *router.Response) (string, bool) {
	switch r.URL.Query().Get("format") {
	case "", "text":
		return present.Text(resp), true
	case "markdown", "md":
		return present.Markdown(resp), true
	case "html":
		out, err := present.HTML(resp)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "rendering answer")
			return "", false
		}
		return out, true
	default:
		writeError(w, http.StatusBadRequest, "unknown format (use text, markdown, or html)")
		return "", false
	}
}

func decodeAsk(w http.ResponseWriter, r *http.Request) (askRequest, bool) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return req, false
	}
	if req.Utterance == "" {
		writeError(w, http.StatusBadRequest, "utterance is required")
		return req, false
	}
	return req, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("server: writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
