package app

import (
	"log/slog"

	"github.com/trebuchet-org/treb-dao/internal/adapters/metrics"
	"github.com/trebuchet-org/treb-dao/internal/domain/config"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector usecase.ProposalSelector
	Metrics  *metrics.Metrics

	// Use cases
	Governance       *usecase.Governance
	InspectContracts *usecase.InspectContracts

	session *usecase.SessionManager
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector usecase.ProposalSelector,
	metrics *metrics.Metrics,
	governance *usecase.Governance,
	inspectContracts *usecase.InspectContracts,
	session *usecase.SessionManager,
) (*App, error) {
	return &App{
		Config:           cfg,
		Log:              log,
		Selector:         selector,
		Metrics:          metrics,
		Governance:       governance,
		InspectContracts: inspectContracts,
		session:          session,
	}, nil
}

// Close stops the account subscription of the session
func (a *App) Close() {
	if a.session != nil {
		a.session.Close()
	}
}
