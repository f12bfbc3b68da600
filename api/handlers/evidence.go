package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/whisprnet/whispr-api/api"
	"github.com/whisprnet/whispr-api/config"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

// Evidence handles evidence file requests
type Evidence struct {
	Ledger *core.Ledger
}

// AttachEvidenceHandler stores an evidence file against the caller's report
func (e Evidence) AttachEvidenceHandler(w http.ResponseWriter, r *http.Request) {
	reportID, err := parseReportID(r)
	if err != nil {
		config.ErrorStatus("invalid report_id", http.StatusBadRequest, w, err)
		return
	}

	var upload core.EvidenceUpload
	if err := json.NewDecoder(r.Body).Decode(&upload); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id, err := e.Ledger.AttachEvidence(ctx, api.PrincipalFromContext(r.Context()), reportID, upload)
	if err != nil {
		config.ErrorStatus("failed to attach evidence", errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(fmt.Sprintf(`{"evidenceId": %d}`, id)))
}

// EvidenceByIDHandler returns a one element array holding the file, or an
// empty array when it is missing or the caller may not see it
func (e Evidence) EvidenceByIDHandler(w http.ResponseWriter, r *http.Request) {
	evidenceID, err := strconv.ParseUint(mux.Vars(r)["evidence_id"], 10, 64)
	if err != nil {
		config.ErrorStatus("invalid evidence_id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	file, err := e.Ledger.Evidence(ctx, api.PrincipalFromContext(r.Context()), evidenceID)
	if err != nil {
		config.ErrorStatus("failed to get evidence", errorStatusCode(err), w, err)
		return
	}

	files := []models.EvidenceFile{}
	if file != nil {
		files = append(files, *file)
	}
	b, err := json.Marshal(files)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
