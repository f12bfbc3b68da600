package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/whisprnet/whispr-api/api"
	"github.com/whisprnet/whispr-api/config"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

// Authority handles registry and statistics requests
type Authority struct {
	Ledger *core.Ledger
}

// StatisticsHandler returns the aggregate counters, for authorities
func (a Authority) StatisticsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := a.Ledger.Statistics(ctx, api.PrincipalFromContext(r.Context()))
	if err != nil {
		config.ErrorStatus("failed to get statistics", errorStatusCode(err), w, err)
		return
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

type addAuthorityRequest struct {
	ID models.Principal `json:"id"`
}

// AddAuthorityHandler registers a new authority, for existing authorities
func (a Authority) AddAuthorityHandler(w http.ResponseWriter, r *http.Request) {
	var body addAuthorityRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := a.Ledger.AddAuthority(ctx, api.PrincipalFromContext(r.Context()), body.ID); err != nil {
		config.ErrorStatus("failed to add authority", errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"added": true}`))
}
