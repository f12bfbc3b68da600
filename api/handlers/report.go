package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/whisprnet/whispr-api/api"
	"github.com/whisprnet/whispr-api/config"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/models"
)

// Report handles report lifecycle requests
type Report struct {
	Ledger *core.Ledger
}

// SubmitReportHandler creates a new staked report for the caller
func (re Report) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	var submission core.ReportSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	id, err := re.Ledger.SubmitReport(ctx, api.PrincipalFromContext(r.Context()), submission)
	if err != nil {
		config.ErrorStatus("failed to submit report", errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(fmt.Sprintf(`{"reportId": %d}`, id)))
}

// AllReportsHandler returns every report, for authorities
func (re Report) AllReportsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.Ledger.AllReports(ctx, api.PrincipalFromContext(r.Context()))
	if err != nil {
		config.ErrorStatus("failed to get reports", errorStatusCode(err), w, err)
		return
	}
	writeReports(w, dbResp)
}

// ReportsByStatusHandler returns reports filtered by lifecycle state, for authorities
func (re Report) ReportsByStatusHandler(w http.ResponseWriter, r *http.Request) {
	status, err := parseStatus(mux.Vars(r)["status"])
	if err != nil {
		config.ErrorStatus("failed to parse status", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.Ledger.ReportsByStatus(ctx, api.PrincipalFromContext(r.Context()), status)
	if err != nil {
		config.ErrorStatus("failed to get reports by status", errorStatusCode(err), w, err)
		return
	}
	writeReports(w, dbResp)
}

// ReportByIDHandler returns a one-or-empty report list, visibility filtered
func (re Report) ReportByIDHandler(w http.ResponseWriter, r *http.Request) {
	reportID, err := parseReportID(r)
	if err != nil {
		config.ErrorStatus("failed to parse report id", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	report, err := re.Ledger.Report(ctx, api.PrincipalFromContext(r.Context()), reportID)
	if err != nil {
		config.ErrorStatus("failed to get report", errorStatusCode(err), w, err)
		return
	}

	reports := []models.Report{}
	if report != nil {
		reports = append(reports, *report)
	}
	writeReports(w, reports)
}

// UserReportsHandler returns the caller's own reports
func (re Report) UserReportsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := re.Ledger.UserReports(ctx, api.PrincipalFromContext(r.Context()))
	if err != nil {
		config.ErrorStatus("failed to get user reports", errorStatusCode(err), w, err)
		return
	}
	writeReports(w, dbResp)
}

type reviewRequest struct {
	Notes string `json:"notes,omitempty"`
}

// VerifyReportHandler settles a pending report as approved, for authorities
func (re Report) VerifyReportHandler(w http.ResponseWriter, r *http.Request) {
	re.settle(w, r, re.Ledger.VerifyReport, "failed to verify report")
}

// RejectReportHandler settles a pending report as rejected, for authorities
func (re Report) RejectReportHandler(w http.ResponseWriter, r *http.Request) {
	re.settle(w, r, re.Ledger.RejectReport, "failed to reject report")
}

func (re Report) settle(w http.ResponseWriter, r *http.Request, op func(context.Context, models.Principal, uint64, string) error, message string) {
	reportID, err := parseReportID(r)
	if err != nil {
		config.ErrorStatus("failed to parse report id", http.StatusBadRequest, w, err)
		return
	}

	// Notes are optional; an empty body settles without them.
	var review reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil && !errors.Is(err, io.EOF) {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := op(ctx, api.PrincipalFromContext(r.Context()), reportID, review.Notes); err != nil {
		config.ErrorStatus(message, errorStatusCode(err), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"settled": true}`))
}

func parseReportID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["report_id"], 10, 64)
}

func parseStatus(raw string) (models.ReportStatus, error) {
	switch status := models.ReportStatus(raw); status {
	case models.StatusPending, models.StatusUnderReview, models.StatusApproved, models.StatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("unknown report status %q", raw)
	}
}

func writeReports(w http.ResponseWriter, reports []models.Report) {
	if len(reports) == 0 {
		reports = []models.Report{}
	}
	b, err := json.Marshal(reports)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
