package config

import (
	"go.uber.org/zap"
)

// InitLogger builds the process logger and installs it as zap's global logger.
func InitLogger(s *Settings) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if s.Debug() {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("service", s.Title), zap.String("env", s.Env))
	zap.ReplaceGlobals(log)
	return log
}
