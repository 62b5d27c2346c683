package customer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/javedfarm/dairybook/internal/customer"
)

// Mirrorer refreshes the on-disk backup after a mutation.
type Mirrorer interface {
	Mirror(ctx context.Context) error
}

type Handler struct {
	svc    *customer.Service
	mirror Mirrorer
}

func NewHandler(svc *customer.Service, mirror Mirrorer) *Handler {
	return &Handler{svc: svc, mirror: mirror}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.deactivate)
}

// mirrorState is best effort; a failed backup never fails the request.
func (h *Handler) mirrorState(ctx context.Context) {
	if err := h.mirror.Mirror(ctx); err != nil {
		slog.Error("failed to mirror backup", "error", err)
	}
}

type createCustomerRequest struct {
	Name            string  `json:"name"`
	Phone           string  `json:"phone"`
	WhatsApp        string  `json:"whatsapp"`
	Address         string  `json:"address"`
	Rate            int64   `json:"rate"`
	DefaultQuantity float64 `json:"default_quantity"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), customer.CreateParams{
		Name:            req.Name,
		Phone:           req.Phone,
		WhatsApp:        req.WhatsApp,
		Address:         req.Address,
		Rate:            req.Rate,
		DefaultQuantity: req.DefaultQuantity,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mirrorState(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := customer.ListFilter{
		ActiveOnly: r.URL.Query().Get("active") == "true",
	}

	customers, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(customers)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCustomerRequest struct {
	Name            *string  `json:"name,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	WhatsApp        *string  `json:"whatsapp,omitempty"`
	Address         *string  `json:"address,omitempty"`
	Rate            *int64   `json:"rate,omitempty"`
	DefaultQuantity *float64 `json:"default_quantity,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}

	if req.Phone != nil {
		c.Phone = *req.Phone
	}

	if req.WhatsApp != nil {
		c.WhatsApp = *req.WhatsApp
	}

	if req.Address != nil {
		c.Address = *req.Address
	}

	if req.Rate != nil {
		c.Rate = *req.Rate
	}

	if req.DefaultQuantity != nil {
		c.DefaultQuantity = *req.DefaultQuantity
	}

	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.mirrorState(r.Context())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Deactivate(r.Context(), id); err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)

		return
	}

	h.mirrorState(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
