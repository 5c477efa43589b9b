package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lockreap/lockreapd/internal/core"
	"github.com/lockreap/lockreapd/internal/reaper"
)

// defaultListLimit caps lock listings when no limit is supplied.
const defaultListLimit = 100

// Handler serves the admin surface: lock inspection, manual deletion and
// on-demand reaper passes.
type Handler struct {
	store core.Store
	orch  *reaper.Orchestrator
	keys  core.Keys
}

// NewHandler creates a Handler reading through store and reaping via orch.
func NewHandler(store core.Store, orch *reaper.Orchestrator, keys core.Keys) *Handler {
	return &Handler{store: store, orch: orch, keys: keys}
}

// Register mounts the admin routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.Health)
	r.Post("/reap", h.Reap)
	r.Route("/locks", func(r chi.Router) {
		r.Get("/", h.ListLocks)
		r.Get("/{digest}", h.GetLock)
		r.Delete("/{digest}", h.DeleteLock)
	})
}

// Health reports store connectivity.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "store_unavailable", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Reap runs one reaper pass immediately.
func (h *Handler) Reap(w http.ResponseWriter, r *http.Request) {
	reaped, err := h.orch.Reap(r.Context())
	if err != nil {
		if errors.Is(err, reaper.ErrUnknownStrategy) {
			WriteError(w, http.StatusInternalServerError, "configuration_error", err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, "reap_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"reaped": reaped})
}

// ListLocks returns a page of registered lock digests, newest first, with
// their metadata when present.
func (h *Handler) ListLocks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	limit := queryInt(r, "limit", defaultListLimit)
	offset := queryInt(r, "offset", 0)
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	digests, err := h.store.SortedSetReverseRange(ctx, h.keys.Digests)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	total := len(digests)
	end := offset + limit
	if end > total {
		end = total
	}
	if offset > total {
		offset = total
	}

	locks := make([]core.Lock, 0, end-offset)
	for _, digest := range digests[offset:end] {
		locks = append(locks, core.Lock{Digest: digest, Info: h.lockInfo(ctx, digest)})
	}
	WriteJSON(w, http.StatusOK, map[string]any{"locks": locks, "total": total})
}

// GetLock returns one registered lock.
func (h *Handler) GetLock(w http.ResponseWriter, r *http.Request) {
	digest := chi.URLParam(r, "digest")
	_, present, err := h.store.SortedSetScore(r.Context(), h.keys.Digests, digest)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if !present {
		WriteError(w, http.StatusNotFound, "not_found", "lock "+digest+" is not registered")
		return
	}
	WriteJSON(w, http.StatusOK, core.Lock{Digest: digest, Info: h.lockInfo(r.Context(), digest)})
}

// DeleteLock removes one lock and its metadata from the registry.
func (h *Handler) DeleteLock(w http.ResponseWriter, r *http.Request) {
	digest := chi.URLParam(r, "digest")
	deleted, err := reaper.DeleteBatch(r.Context(), h.store, h.keys, []string{digest})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if deleted == 0 {
		WriteError(w, http.StatusNotFound, "not_found", "lock "+digest+" is not registered")
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

// lockInfo fetches a digest's INFO blob, tolerating absent or malformed
// metadata.
func (h *Handler) lockInfo(ctx context.Context, digest string) *core.LockInfo {
	raw, err := h.store.Get(ctx, core.LockInfoKey(digest))
	if err != nil || raw == "" {
		return nil
	}
	info, err := core.UnmarshalLockInfo([]byte(raw))
	if err != nil {
		slog.Warn("malformed lock info", "digest", digest, "error", err)
		return nil
	}
	return info
}

func queryInt(r *http.Request, name string, defaultVal int) int {
	if val := r.URL.Query().Get(name); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
