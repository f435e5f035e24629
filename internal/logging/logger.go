package logging

import (
	"go.uber.org/zap"
)

// New returns a JSON production logger for the production environment and a
// human-readable development logger for everything else.
func New(environment string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("service", "gutly")), nil
}
