// Package backup serves snapshot export, restore, and mirror status.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/javedfarm/dairybook/internal/backup"
)

type Handler struct {
	svc *backup.Service
}

func NewHandler(svc *backup.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.export)
	r.Post("/import", h.importSnapshot)
	r.Get("/info", h.info)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	// Assemble the whole snapshot before touching the response, so a
	// read failure becomes a 500 instead of a truncated download.
	var buf bytes.Buffer
	if err := h.svc.ExportJSON(r.Context(), &buf); err != nil {
		slog.Error("failed to export snapshot", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	filename := fmt.Sprintf("dairybook-%s.json", time.Now().UTC().Format("20060102-150405"))

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write snapshot", "error", err)
	}
}

func (h *Handler) importSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.ImportJSON(r.Context(), r.Body); err != nil {
		if errors.Is(err, backup.ErrInvalidSnapshot) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	// The restored state becomes the new mirror.
	if err := h.svc.Mirror(r.Context()); err != nil {
		slog.Error("failed to mirror backup", "error", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

type infoResponse struct {
	MirrorExists bool       `json:"mirror_exists"`
	MirroredAt   *time.Time `json:"mirrored_at,omitempty"`
	HistoryCount int        `json:"history_count"`
}

func (h *Handler) info(w http.ResponseWriter, r *http.Request) {
	info, err := h.svc.Info()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := infoResponse{
		MirrorExists: info.MirrorExists,
		HistoryCount: info.HistoryCount,
	}
	if info.MirrorExists {
		resp.MirroredAt = new(info.MirroredAt)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
