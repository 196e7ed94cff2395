package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/dadmoscow/xrandrctl/internal/logger"
	"github.com/dadmoscow/xrandrctl/internal/randr"
)

// Service is the display-configuration surface the server exposes.
// *randr.Client satisfies it; tests substitute a stub.
type Service interface {
	Snapshot(ctx context.Context) (*randr.Snapshot, error)
	Apply(ctx context.Context, snap *randr.Snapshot, changes ...randr.Change) error
}

// Server represents the HTTP API server
type Server struct {
	router   *mux.Router
	svc      Service
	watcher  *Watcher
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewServer creates a new API server
func NewServer(svc Service, watcher *Watcher) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		svc:     svc,
		watcher: watcher,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // local tool, any origin may talk to it
			},
		},
		log: *logger.WithComponent("api"),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/displays", s.handleGetDisplays).Methods("GET")
	api.HandleFunc("/displays/stream", s.handleDisplayStream)
	api.HandleFunc("/displays/{name}", s.handleGetDisplay).Methods("GET")
	api.HandleFunc("/displays/{name}", s.handleApplyChange).Methods("POST")

	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("Starting HTTP server")
	return http.ListenAndServe(addr, s.enableCORS(s.router))
}

// Handler returns the server's HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.enableCORS(s.router)
}

// enableCORS adds CORS headers
func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ChangeRequest is the JSON body accepted by POST /api/displays/{name}.
// Absent fields are left untouched on the output.
type ChangeRequest struct {
	Off        bool   `json:"off,omitempty"`
	Auto       bool   `json:"auto,omitempty"`
	Mode       string `json:"mode,omitempty"` // "WxH"
	Rotation   string `json:"rotation,omitempty"`
	Relation   string `json:"relation,omitempty"`
	RelativeTo string `json:"relative_to,omitempty"`
	Primary    bool   `json:"primary,omitempty"`
}

// ToChange converts the request into a validated-later randr.Change for
// the named output.
func (cr ChangeRequest) ToChange(output string) (randr.Change, error) {
	change := randr.NewChange(output)

	if cr.Off {
		return change.TurnOff(), nil
	}
	if cr.Auto {
		change = change.TurnOn()
	}
	if cr.Mode != "" {
		res, err := randr.ParseResolution(cr.Mode)
		if err != nil {
			return randr.Change{}, err
		}
		change = change.WithResolution(res)
	}
	if cr.Rotation != "" {
		change = change.WithRotation(randr.Rotation(cr.Rotation))
	}
	if cr.Relation != "" {
		rel, err := randr.ParseRelation(cr.Relation)
		if err != nil {
			return randr.Change{}, err
		}
		change = change.WithPosition(rel, cr.RelativeTo)
	}
	if cr.Primary {
		change = change.AsPrimary()
	}

	return change, nil
}

// HTTP Handlers

func (s *Server) handleGetDisplays(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snap)
}

func (s *Server) handleGetDisplay(w http.ResponseWriter, r *http.Request) {
	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	display, err := snap.Display(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(display)
}

func (s *Server) handleApplyChange(w http.ResponseWriter, r *http.Request) {
	var req ChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSONError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	change, err := req.ToChange(mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, err)
		return
	}

	snap, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.svc.Apply(r.Context(), snap, change); err != nil {
		s.writeError(w, err)
		return
	}

	// The pre-apply snapshot is stale now; report the fresh state.
	fresh, err := s.svc.Snapshot(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(fresh)
}

func (s *Server) handleDisplayStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	updates := s.watcher.Subscribe()
	defer s.watcher.Unsubscribe(updates)

	// Send the current state before streaming changes.
	if snap, err := s.svc.Snapshot(r.Context()); err == nil {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}

	for snap := range updates {
		if err := conn.WriteJSON(snap); err != nil {
			s.log.Debug().Err(err).Msg("WebSocket client gone")
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// writeError maps library errors onto HTTP statuses: missing outputs
// are 404, rejected settings 422, failed xrandr invocations 502.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var (
		notFound *randr.NotFoundError
		valErr   *randr.ValidationError
		applyErr *randr.ApplyError
	)

	switch {
	case errors.As(err, &notFound):
		s.writeJSONError(w, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &valErr), errors.Is(err, randr.ErrEmptyChange):
		s.writeJSONError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.As(err, &applyErr):
		s.writeJSONError(w, http.StatusBadGateway, err.Error(), map[string]any{
			"exit_code": applyErr.ExitCode,
			"stderr":    applyErr.Stderr,
		})
	default:
		s.writeJSONError(w, http.StatusInternalServerError, err.Error(), nil)
	}
}

func (s *Server) writeJSONError(w http.ResponseWriter, status int, msg string, detail map[string]any) {
	body := map[string]any{"error": msg}
	for k, v := range detail {
		body[k] = v
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
