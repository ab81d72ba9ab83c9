package notes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouteStyle selects how the notes endpoints are laid out.
type RouteStyle string

const (
	// StyleNested registers one route per method under /notes.
	StyleNested RouteStyle = "nested"
	// StyleServerless registers one handler per path under /api and
	// dispatches on the method inside it.
	StyleServerless RouteStyle = "serverless"
)

func ParseRouteStyle(s string) (RouteStyle, error) {
	switch RouteStyle(s) {
	case StyleNested, StyleServerless:
		return RouteStyle(s), nil
	}
	return "", fmt.Errorf("unknown route style %q", s)
}

const (
	msgInvalidJSON      = "invalid json"
	msgNotFound         = "Not found"
	msgMethodNotAllowed = "Method not allowed"
	msgServerError      = "Server error"
)

type Handlers struct {
	store Store
	log   *slog.Logger
}

// Store is an abstraction over the notes storage.
// It allows unit-testing handlers without a real database.
type Store interface {
	List(ctx context.Context) ([]Note, error)
	Get(ctx context.Context, id int64) (Note, error)
	Create(ctx context.Context, req CreateNoteRequest) (Note, error)
	Update(ctx context.Context, id int64, req UpdateNoteRequest) (Note, error)
	Delete(ctx context.Context, id int64) error
}

func NewHandlers(store Store, log *slog.Logger) *Handlers {
	return &Handlers{store: store, log: log}
}

func (h *Handlers) Routes(style RouteStyle) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.StripSlashes)
	r.Use(h.logRequests, h.recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, msgNotFound)
	})
	r.MethodNotAllowed(methodNotAllowed)

	r.Get("/health", health)

	switch style {
	case StyleServerless:
		r.Get("/api/health", health)
		r.HandleFunc("/api/notes", h.collection)
		r.HandleFunc("/api/notes/{id}", h.item)
	default:
		r.Get("/notes", h.list)
		r.Post("/notes", h.create)
		r.Get("/notes/{id}", h.get)
		r.Patch("/notes/{id}", h.update)
		r.Put("/notes/{id}", h.update)
		r.Delete("/notes/{id}", h.delete)
	}

	return r
}

func (h *Handlers) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		methodNotAllowed(w, r)
	}
}

func (h *Handlers) item(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPatch, http.MethodPut:
		h.update(w, r)
	case http.MethodDelete:
		h.delete(w, r)
	default:
		w.Header().Set("Allow", "GET, PATCH, PUT, DELETE")
		methodNotAllowed(w, r)
	}
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	n, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req CreateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	n, err := h.store.Create(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req UpdateNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	n, err := h.store.Update(r.Context(), id, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail maps err onto a status code. Anything that is neither a validation
// error nor ErrNotFound is logged and answered with a generic 500.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
	default:
		h.log.ErrorContext(r.Context(), "notes handler error",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}

// decodeJSON treats an empty body as an empty object and rejects anything
// after the first JSON value.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON body")
	}
	return nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
