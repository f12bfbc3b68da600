package config

import (
	"fmt"
	"net/http"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	URL           string `envconfig:"DB_URI"`
	DatabaseName  string `envconfig:"DB_NAME"`
	BaseURL       string `envconfig:"BASE_URL"`
	Port          string `envconfig:"PORT" default:"8080"`
	Environment   string `envconfig:"ENVIRONMENT" default:"production"`
	JWTSecret     string `envconfig:"JWT_SECRET"`
	SeedAuthority string `envconfig:"SEED_AUTHORITY"`

	// Staking policy. MaxStake is parsed and carried but no lifecycle
	// path currently enforces an upper bound.
	MinStake         uint64 `envconfig:"MIN_STAKE" default:"5"`
	MaxStake         uint64 `envconfig:"MAX_STAKE" default:"100"`
	RewardMultiplier uint64 `envconfig:"REWARD_MULTIPLIER" default:"10"`
	StartingBalance  uint64 `envconfig:"STARTING_BALANCE" default:"100"`
}

// New sets up the logger and reads all config values from the environment
func New() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		zap.S().Fatalw("failed to process config", "error", err)
	}

	logger, err := setLogger(cfg.Environment)
	if err != nil {
		zap.S().Fatalw("failed to build logger", "error", err)
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &cfg
}

func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "development":
		return zap.NewDevelopment()
	case "local":
		return zap.NewExample(), nil
	default:
		return zap.NewProduction()
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}
