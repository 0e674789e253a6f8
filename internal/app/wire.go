//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/treb-dao/internal/adapters"
	"github.com/trebuchet-org/treb-dao/internal/config"
	"github.com/trebuchet-org/treb-dao/internal/logging"
	"github.com/trebuchet-org/treb-dao/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, func(), error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.SystemClock,
		usecase.NewSessionManager,
		wire.Bind(new(usecase.SessionSource), new(*usecase.SessionManager)),
		usecase.NewViewStore,
		usecase.NewActionGateway,
		usecase.NewGovernance,
		usecase.NewInspectContracts,

		// App
		NewApp,
	)
	return nil, nil, nil
}
