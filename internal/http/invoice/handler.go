package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stefifm/dashboard/internal/form"
	"github.com/stefifm/dashboard/internal/invoice"
)

// ViewCache holds rendered list views between revalidations.
type ViewCache interface {
	Get(ctx context.Context, path, variant string) (any, bool)
	Set(ctx context.Context, path, variant string, value any)
}

type Handler struct {
	svc   *invoice.Service
	views ViewCache
}

func NewHandler(svc *invoice.Service, views ViewCache) *Handler {
	return &Handler{svc: svc, views: views}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/invoices", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Post("/{id}", h.update)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
		r.Post("/{id}/delete", h.delete)
	})

	r.Get("/customers", h.customers)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")

	if cached, ok := h.views.Get(r.Context(), invoice.ListPath, query); ok {
		w.Header().Set("X-Cache", "HIT")
		writeJSON(w, http.StatusOK, cached)

		return
	}

	items, err := h.svc.ListInvoices(r.Context(), invoice.ListFilter{Query: query})
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list invoices", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	resp := toListResponse(items)
	h.views.Set(r.Context(), invoice.ListPath, query, resp)

	w.Header().Set("X-Cache", "MISS")
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	inv, err := h.svc.GetInvoice(r.Context(), id)
	if err != nil {
		if errors.Is(err, invoice.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		slog.ErrorContext(r.Context(), "failed to get invoice", "error", err, "invoice_id", id)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toResponse(inv))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	values, err := form.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeResult(w, r, h.svc.CreateInvoice(r.Context(), invoice.State{}, values))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	values, err := form.FromRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeResult(w, r, h.svc.UpdateInvoice(r.Context(), id, invoice.State{}, values))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if state := h.svc.DeleteInvoice(r.Context(), id); state != nil {
		writeJSON(w, http.StatusInternalServerError, state)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) customers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.ListCustomers(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list customers", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, toCustomerResponseList(customers))
}

// writeResult redirects on success. Rejected input is 422; a failed write is 500.
func writeResult(w http.ResponseWriter, r *http.Request, res invoice.Result) {
	if res.Redirected() {
		http.Redirect(w, r, res.Redirect, http.StatusSeeOther)
		return
	}

	status := http.StatusInternalServerError
	if res.State.Errors != nil {
		status = http.StatusUnprocessableEntity
	}

	writeJSON(w, status, res.State)
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
