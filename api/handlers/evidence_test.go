package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whisprnet/whispr-api/api/handlers"
	"github.com/whisprnet/whispr-api/api/testhelpers"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

func TestEvidence_AttachEvidenceHandler(t *testing.T) {
	ledger, store := testhelpers.NewLedger(officer)
	h := handlers.Evidence{Ledger: ledger}
	reportID := submitReport(t, ledger, alice, 10)

	body := `{"name": "river.jpg", "fileType": "image/jpeg", "data": "/9j/"}`
	req := newRequest(t, "POST", "/api/v1/reports/1/evidence", body, alice,
		map[string]string{"report_id": "1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.AttachEvidenceHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, `{"evidenceId": 1}`, rr.Body.String())
	assert.Equal(t, []uint64{1}, store.Reports[reportID].EvidenceFiles)
}

func TestEvidence_AttachEvidenceHandlerForeignReport(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Evidence{Ledger: ledger}
	submitReport(t, ledger, alice, 10)

	body := `{"name": "river.jpg", "fileType": "image/jpeg", "data": "/9j/"}`
	req := newRequest(t, "POST", "/api/v1/reports/1/evidence", body, bob,
		map[string]string{"report_id": "1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.AttachEvidenceHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestEvidence_EvidenceByIDHandler(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Evidence{Ledger: ledger}
	reportID := submitReport(t, ledger, alice, 10)
	evidenceID, err := ledger.AttachEvidence(context.Background(), alice, reportID, core.EvidenceUpload{
		Name:     "river.jpg",
		FileType: "image/jpeg",
		Data:     []byte{0xff, 0xd8, 0xff},
	})
	require.NoError(t, err)

	req := newRequest(t, "GET", "/api/v1/evidence/1", "", alice,
		map[string]string{"evidence_id": "1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.EvidenceByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var files []models.EvidenceFile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &files))
	require.Len(t, files, 1)
	assert.Equal(t, evidenceID, files[0].ID)
	assert.Equal(t, "river.jpg", files[0].Name)
}

func TestEvidence_EvidenceByIDHandlerHiddenFromStrangers(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Evidence{Ledger: ledger}
	reportID := submitReport(t, ledger, alice, 10)
	_, err := ledger.AttachEvidence(context.Background(), alice, reportID, core.EvidenceUpload{Name: "river.jpg"})
	require.NoError(t, err)

	req := newRequest(t, "GET", "/api/v1/evidence/1", "", bob,
		map[string]string{"evidence_id": "1"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.EvidenceByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestEvidence_EvidenceByIDHandlerBadID(t *testing.T) {
	ledger, _ := testhelpers.NewLedger(officer)
	h := handlers.Evidence{Ledger: ledger}

	req := newRequest(t, "GET", "/api/v1/evidence/abc", "", alice,
		map[string]string{"evidence_id": "abc"})
	rr := httptest.NewRecorder()

	http.HandlerFunc(h.EvidenceByIDHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
