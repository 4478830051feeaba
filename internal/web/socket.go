package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/coder/websocket"

	"github.com/hissain/cline-ui/internal/history"
)

// handleQuerySocket streams progress for one dispatched query over a
// websocket. The connection closes after the terminal "done" or "error"
// message, or immediately if the query already finished.
func (s *Server) handleQuerySocket(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	// Subscribe before reading the entry: a query that finishes in between
	// is then observed either in the re-fetched row or as a channel close,
	// never missed entirely.
	ch, cancel := s.hub.Subscribe(id)
	defer cancel()

	entry, err := s.store.Get(id)
	if errors.Is(err, history.ErrNotFound) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to load entry", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Debug("failed to accept websocket", "query_id", id, "error", err)
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	ctx := r.Context()

	if entry.Response != history.PlaceholderResponse {
		_ = writeMessage(ctx, conn, Message{
			Type: "done", Text: entry.Response, TaskID: entry.TaskID,
		})
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				// Dispatcher finished and dropped subscribers; send the
				// persisted outcome as the terminal message.
				if final, err := s.store.Get(id); err == nil {
					_ = writeMessage(ctx, conn, Message{
						Type: "done", Text: final.Response, TaskID: final.TaskID,
					})
				}
				return
			}
			if err := writeMessage(ctx, conn, msg); err != nil {
				return
			}
			if msg.Type == "done" || msg.Type == "error" {
				return
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}
