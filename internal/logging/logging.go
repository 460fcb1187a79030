package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New returns a development logger in debug mode and a JSON production logger otherwise.
func New(debug bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if debug {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return l, nil
}
