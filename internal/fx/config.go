package fx

import (
	"phonebook/config"
	"phonebook/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		newConfig,
	),
	fx.Invoke(
		initLogger,
	),
)

// newConfig loads .env files before reading the environment so that Load
// sees them. Variables already set in the process win.
func newConfig() (*config.Config, error) {
	LoadEnvFiles()
	return config.Load()
}

func LoadEnvFiles() {
	for _, path := range []string{".env", "../../.env"} {
		if err := godotenv.Load(path); err != nil {
			logger.Debug().Str("path", path).Err(err).Msg("env file not loaded")
		}
	}
}

func initLogger(cfg *config.Config) {
	logger.Init(cfg)
}
