package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/whisprnet/whispr-api/api"
	"github.com/whisprnet/whispr-api/config"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

// Message handles report thread requests
type Message struct {
	Ledger *core.Ledger
}

type messageRequest struct {
	Content string `json:"content"`
}

// MessagesHandler returns the ordered thread of a report, visibility filtered
func (m Message) MessagesHandler(w http.ResponseWriter, r *http.Request) {
	reportID, err := parseReportID(r)
	if err != nil {
		config.ErrorStatus("failed to parse report id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.Ledger.Messages(ctx, api.PrincipalFromContext(r.Context()), reportID)
	if err != nil {
		config.ErrorStatus("failed to get messages", errorStatusCode(err), w, err)
		return
	}

	if len(dbResp) == 0 {
		dbResp = []models.Message{}
	}
	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SendAuthorityMessageHandler appends an authority message to a report thread
func (m Message) SendAuthorityMessageHandler(w http.ResponseWriter, r *http.Request) {
	m.send(w, r, m.Ledger.SendAuthorityMessage, "failed to send authority message")
}

// SendReporterMessageHandler appends a reporter message to the caller's own report thread
func (m Message) SendReporterMessageHandler(w http.ResponseWriter, r *http.Request) {
	m.send(w, r, m.Ledger.SendReporterMessage, "failed to send reporter message")
}

func (m Message) send(w http.ResponseWriter, r *http.Request, op func(context.Context, models.Principal, uint64, string) error, message string) {
	reportID, err := parseReportID(r)
	if err != nil {
		config.ErrorStatus("failed to parse report id", http.StatusBadRequest, w, err)
		return
	}

	var body messageRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := op(ctx, api.PrincipalFromContext(r.Context()), reportID, body.Content); err != nil {
		config.ErrorStatus(message, errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{"sent": true}`))
}
