package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/whisprnet/whispr-api/api"
	"github.com/whisprnet/whispr-api/config"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

// Token handles balance and transfer requests
type Token struct {
	Ledger *core.Ledger
}

// BalanceHandler returns the caller's token balance, 0 when unknown
func (t Token) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	balance, err := t.Ledger.Balance(ctx, api.PrincipalFromContext(r.Context()))
	if err != nil {
		config.ErrorStatus("failed to get balance", errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(fmt.Sprintf(`{"balance": %d}`, balance)))
}

type transferRequest struct {
	To     models.Principal `json:"to"`
	Amount uint64           `json:"amount"`
}

// TransferHandler moves tokens from the caller to another user
func (t Token) TransferHandler(w http.ResponseWriter, r *http.Request) {
	var body transferRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := t.Ledger.Transfer(ctx, api.PrincipalFromContext(r.Context()), body.To, body.Amount); err != nil {
		config.ErrorStatus("failed to transfer tokens", errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"transferred": true}`))
}
