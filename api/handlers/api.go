package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/whisprnet/whispr-api/api"
	"github.com/whisprnet/whispr-api/api/scheduler"
	"github.com/whisprnet/whispr-api/config"
	"github.com/whisprnet/whispr-api/core"
	"github.com/whisprnet/whispr-api/databases"
	"github.com/whisprnet/whispr-api/models"
)

// App stores the router, ledger and db connection, so it can be reused
type App struct {
	Router    *mux.Router
	Ledger    *core.Ledger
	Config    config.Config
	Scheduler *scheduler.Scheduler
	dbHelper  databases.DatabaseHelper
}

// Initialize connects to mongo, builds the ledger, seeds the bootstrap
// state and wires the router
func (a *App) Initialize() error {
	client, err := databases.NewClient(&a.Config)
	if err != nil {
		return err
	}
	if err := client.Connect(); err != nil {
		return err
	}
	a.dbHelper = databases.NewDatabase(&a.Config, client)

	reportDB := databases.NewReportDatabase(a.dbHelper)
	statsDB := databases.NewStatsDatabase(a.dbHelper)
	a.Ledger = core.NewLedger(core.Store{
		Reports:     reportDB,
		Users:       databases.NewUserDatabase(a.dbHelper),
		Authorities: databases.NewAuthorityDatabase(a.dbHelper),
		Messages:    databases.NewMessageDatabase(a.dbHelper),
		Evidence:    databases.NewEvidenceDatabase(a.dbHelper),
		Counters:    databases.NewCounterDatabase(a.dbHelper),
		Stats:       statsDB,
	}, core.Policy{
		MinStake:         a.Config.MinStake,
		MaxStake:         a.Config.MaxStake,
		RewardMultiplier: a.Config.RewardMultiplier,
		StartingBalance:  a.Config.StartingBalance,
	})

	if err := a.seed(); err != nil {
		return err
	}

	a.Scheduler = scheduler.NewScheduler(reportDB, statsDB)
	a.Scheduler.Start()

	a.Router = a.New()
	return nil
}

// seed ensures the stats singleton and the bootstrap authority exist
func (a *App) seed() error {
	ctx, cancel := api.WithQueryTimeout(context.Background())
	defer cancel()

	if err := a.Ledger.EnsureStats(ctx); err != nil {
		return err
	}
	if a.Config.SeedAuthority == "" {
		zap.S().Warn("no seed authority configured, authority-only operations need an existing registry")
		return nil
	}
	return a.Ledger.EnsureAuthority(ctx, models.Principal(a.Config.SeedAuthority))
}

// New creates a new mux router and all the routes
func (a *App) New() *mux.Router {
	r := mux.NewRouter()

	re := Report{Ledger: a.Ledger}
	m := Message{Ledger: a.Ledger}
	tok := Token{Ledger: a.Ledger}
	auth := Authority{Ledger: a.Ledger}
	ev := Evidence{Ledger: a.Ledger}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	principal := api.Middleware(a.Config.JWTSecret)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()
	apiCreate.Use(api.MetricsMiddleware, principal)

	apiCreate.Handle("/reports", http.HandlerFunc(re.SubmitReportHandler)).Methods("POST")
	apiCreate.Handle("/reports", http.HandlerFunc(re.AllReportsHandler)).Methods("GET")
	apiCreate.Handle("/reports/status/{status}", http.HandlerFunc(re.ReportsByStatusHandler)).Methods("GET")
	apiCreate.Handle("/reports/{report_id}", http.HandlerFunc(re.ReportByIDHandler)).Methods("GET")
	apiCreate.Handle("/reports/{report_id}/verify", http.HandlerFunc(re.VerifyReportHandler)).Methods("POST")
	apiCreate.Handle("/reports/{report_id}/reject", http.HandlerFunc(re.RejectReportHandler)).Methods("POST")

	apiCreate.Handle("/reports/{report_id}/messages", http.HandlerFunc(m.MessagesHandler)).Methods("GET")
	apiCreate.Handle("/reports/{report_id}/messages/authority", http.HandlerFunc(m.SendAuthorityMessageHandler)).Methods("POST")
	apiCreate.Handle("/reports/{report_id}/messages/reporter", http.HandlerFunc(m.SendReporterMessageHandler)).Methods("POST")

	apiCreate.Handle("/reports/{report_id}/evidence", http.HandlerFunc(ev.AttachEvidenceHandler)).Methods("POST")
	apiCreate.Handle("/evidence/{evidence_id}", http.HandlerFunc(ev.EvidenceByIDHandler)).Methods("GET")

	apiCreate.Handle("/user/reports", http.HandlerFunc(re.UserReportsHandler)).Methods("GET")
	apiCreate.Handle("/user/balance", http.HandlerFunc(tok.BalanceHandler)).Methods("GET")
	apiCreate.Handle("/tokens/transfer", http.HandlerFunc(tok.TransferHandler)).Methods("POST")

	apiCreate.Handle("/authority/statistics", http.HandlerFunc(auth.StatisticsHandler)).Methods("GET")
	apiCreate.Handle("/authority", http.HandlerFunc(auth.AddAuthorityHandler)).Methods("POST")

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}

// errorStatusCode maps ledger failures onto HTTP status codes
func errorStatusCode(err error) int {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrNotAuthority), errors.Is(err, core.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInvalidState), errors.Is(err, core.ErrAlreadyAuthority):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidStake), errors.Is(err, core.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
