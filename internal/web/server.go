// Package web serves the browser UI: query submission, live progress over
// websockets, query history, and settings.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/hissain/cline-ui/cline"
	"github.com/hissain/cline-ui/internal/config"
	"github.com/hissain/cline-ui/internal/history"
	"github.com/hissain/cline-ui/internal/settings"
)

//go:embed templates/*.html
var templateFS embed.FS

// askFunc runs one cline invocation. Swappable in tests.
type askFunc func(ctx context.Context, req cline.AskRequest) (*cline.Result, error)

// Server wires the HTTP handlers to the history store, settings store, and
// the cline client.
type Server struct {
	cfg      config.Config
	store    *history.Store
	settings *settings.Store
	hub      *Hub
	tmpl     *template.Template
	ask      askFunc

	// baseCtx outlives individual requests so a dispatched query keeps
	// running after the submitting request returns.
	baseCtx context.Context
}

// NewServer constructs the web server. ctx bounds the lifetime of
// background query dispatches.
func NewServer(ctx context.Context, cfg config.Config, store *history.Store, st *settings.Store) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		cfg:      cfg,
		store:    store,
		settings: st,
		hub:      NewHub(),
		tmpl:     tmpl,
		baseCtx:  ctx,
	}
	s.ask = s.askCline
	return s, nil
}

// Handler returns the routing mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /history/{id}", s.handleHistoryGet)
	mux.HandleFunc("DELETE /history/{id}", s.handleHistoryDelete)
	mux.HandleFunc("GET /settings", s.handleSettingsGet)
	mux.HandleFunc("POST /settings", s.handleSettingsPost)
	mux.HandleFunc("GET /ws/query/{id}", s.handleQuerySocket)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// askCline builds a client from the current configuration plus the live
// settings override and runs the request.
func (s *Server) askCline(ctx context.Context, req cline.AskRequest) (*cline.Result, error) {
	opts := s.cfg.Cline.ToOptions()
	if p := s.settings.Get().ClinePath; p != "" {
		opts = append(opts, cline.WithClinePath(p))
	}
	client := cline.NewClineCLI(opts...)
	return client.Ask(ctx, req)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.List(50)
	if err != nil {
		slog.Error("failed to list history", "error", err)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	s.render(w, "index.html", map[string]any{"Entries": entries})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	query := r.PostFormValue("query")
	if query == "" {
		http.Error(w, "query is required", http.StatusBadRequest)
		return
	}
	searchOptions := r.PostFormValue("search_options")
	taskID := r.PostFormValue("task_id")

	id, err := s.store.Insert(query, searchOptions)
	if err != nil {
		slog.Error("failed to record query", "error", err)
		http.Error(w, "failed to record query", http.StatusInternalServerError)
		return
	}

	go s.runQuery(id, query, searchOptions, taskID)

	writeJSON(w, http.StatusAccepted, map[string]any{
		"id":       id,
		"response": history.PlaceholderResponse,
	})
}

// runQuery drives one cline invocation in the background, streaming progress
// to subscribers and persisting the outcome.
func (s *Server) runQuery(id int64, query, searchOptions, taskID string) {
	log := slog.With("query_id", id, "invocation", uuid.NewString())
	log.Info("query dispatched", "resume", taskID != "")
	started := time.Now()

	defer s.hub.Close(id)

	prompt := query
	if searchOptions != "" {
		prompt = fmt.Sprintf("%s\n\nSearch options: %s", query, searchOptions)
	}

	result, err := s.ask(s.baseCtx, cline.AskRequest{
		Prompt: prompt,
		TaskID: taskID,
		OnProgress: func(status string) {
			s.hub.Publish(id, Message{Type: "status", Text: status})
		},
	})

	response := ""
	resultTaskID := ""
	if result != nil {
		response = result.Response
		resultTaskID = result.TaskID
	}
	if err != nil {
		log.Error("query failed", "error", err, "elapsed", time.Since(started))
		response = "Error: " + err.Error()
	} else {
		log.Info("query answered", "elapsed", time.Since(started))
	}

	if err := s.store.UpdateResponse(id, response, resultTaskID); err != nil {
		log.Error("failed to store response", "error", err)
	}

	if err != nil {
		s.hub.Publish(id, Message{Type: "error", Text: response})
		return
	}
	s.hub.Publish(id, Message{Type: "done", Text: response, TaskID: resultTaskID})
}

func (s *Server) handleHistoryGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	entry, err := s.store.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to load history entry", "id", id, "error", err)
		http.Error(w, "failed to load entry", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleHistoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	err = s.store.Delete(id)
	if errors.Is(err, history.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("failed to delete history entry", "id", id, "error", err)
		http.Error(w, "failed to delete entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Accept") == "application/json" {
		writeJSON(w, http.StatusOK, s.settings.Get())
		return
	}
	s.render(w, "settings.html", map[string]any{"Settings": s.settings.Get()})
}

func (s *Server) handleSettingsPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	updated := settings.Settings{
		ClinePath: r.PostFormValue("cline_path"),
	}
	if err := s.settings.Save(updated); err != nil {
		slog.Error("failed to save settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("failed to encode response", "error", err)
	}
}
