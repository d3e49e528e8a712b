// Package api exposes the inbound webhook that turns WATI chat events into
// transcript lines.
package api

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rentmax/journeyd/internal/transcript"
)

type Server struct {
	router    *chi.Mux
	port      int
	token     string
	botSender string
	writer    *transcript.Writer
	logger    *slog.Logger
}

func NewServer(port int, token, botSender string, writer *transcript.Writer, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router:    router,
		port:      port,
		token:     token,
		botSender: botSender,
		writer:    writer,
		logger:    logger,
	}

	router.Get("/health", s.health)
	router.Post("/wati-webhook", s.webhook)

	return s
}

func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("webhook server starting", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// watiEvent is the subset of the WATI webhook payload the transcript
// writer needs. Owner marks messages sent by the automated side.
type watiEvent struct {
	WaID       string `json:"waId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Owner      bool   `json:"owner"`
	Timestamp  string `json:"timestamp"` // unix seconds, as WATI sends it
}

func (s *Server) webhook(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("token") != s.token {
		writeJSON(w, http.StatusForbidden, map[string]string{"status": "forbidden"})
		return
	}

	var ev watiEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "no data"})
		return
	}
	if ev.WaID == "" || ev.Text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "no data"})
		return
	}

	ts := time.Now()
	if secs, err := strconv.ParseInt(ev.Timestamp, 10, 64); err == nil && secs > 0 {
		ts = time.Unix(secs, 0)
	}

	sender := ev.SenderName
	if ev.Owner || sender == "" {
		sender = s.botSender
	}

	if err := s.writer.Append(ev.WaID, sender, ev.Text, ts); err != nil {
		s.logger.Error("append transcript failed", "wa_id", ev.WaID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
