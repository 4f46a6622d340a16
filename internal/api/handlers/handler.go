// Package handlers implements the advisor HTTP API (spec.md §4.F),
// grounded on the corpus's internal/api/handlers style: small structs
// holding their collaborators, log.Printf("ERROR [pkg.Func]: %v", err)
// followed by http.Error on failure, json.NewEncoder(w).Encode(resp) on
// success.
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/dom/draft-advisor/internal/advisorerr"
	"github.com/dom/draft-advisor/internal/recommender"
	"github.com/dom/draft-advisor/internal/repository"
	"github.com/dom/draft-advisor/internal/room"
	"github.com/dom/draft-advisor/internal/store"
)

// Handler holds every collaborator the advisor endpoints need. A single
// instance is built once in main and wired into the router.
type Handler struct {
	ConfigDir    string
	Params       recommender.Params
	Hub          *room.Hub
	AdvisoryRepo repository.AdvisoryLogRepository
}

func New(configDir string, params recommender.Params, hub *room.Hub, advisoryRepo repository.AdvisoryLogRepository) *Handler {
	return &Handler{ConfigDir: configDir, Params: params, Hub: hub, AdvisoryRepo: advisoryRepo}
}

func (h *Handler) loadStore(refresh bool) (*store.Store, error) {
	return store.New(h.ConfigDir, refresh)
}

// writeJSON encodes resp as the response body.
func writeJSON(w http.ResponseWriter, resp any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("ERROR [handlers.writeJSON]: %v", err)
	}
}

// writeError maps a typed advisorerr value (or any other error) to the
// HTTP status spec.md §7 calls for.
func writeError(w http.ResponseWriter, op string, err error) {
	switch e := err.(type) {
	case *advisorerr.ConfigError:
		log.Printf("ERROR [handlers.%s]: config error: %v", op, e)
		http.Error(w, e.Error(), http.StatusInternalServerError)
	case *advisorerr.RequestError:
		log.Printf("ERROR [handlers.%s]: request error: %v", op, e)
		http.Error(w, e.Error(), http.StatusBadRequest)
	case *advisorerr.Internal:
		log.Printf("ERROR [handlers.%s]: internal error: %v", op, e)
		http.Error(w, e.Error(), http.StatusInternalServerError)
	default:
		log.Printf("ERROR [handlers.%s]: %v", op, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
