package logger

import (
	"io"
	"os"
	"reserva/config"
	"reserva/shared/constant"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup points the global logger at stdout. Development gets the console
// writer; every other environment gets JSON lines tagged with the app name.
func Setup(cfg *config.Config) {
	Configure(cfg, os.Stdout)
}

func Configure(cfg *config.Config, out io.Writer) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(Level(cfg.Server.LogLevel))

	if isDevelopment(cfg.Server.Env) {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Str("app", cfg.App.Name).Logger()
	}

	log.Debug().Str("loglevel", zerolog.GlobalLevel().String()).Str("env", cfg.Server.Env).Msg("logger initialized")
}

// Level parses name, falling back to info when it is empty or unknown.
func Level(name string) zerolog.Level {
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

// ErrorWithStack logs err with the stack of the caller.
func ErrorWithStack(err error) {
	log.Error().Msgf("%+v", errors.WithStack(err))
}

func isDevelopment(env string) bool {
	return env == constant.Empty || env == constant.ServerEnvDevelopment
}
