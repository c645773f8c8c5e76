package log

import (
	"go.uber.org/zap"
)

// Init builds the process logger and installs it as zap's global.
// prod selects the JSON encoder; otherwise the console development config is used.
func Init(prod bool) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if prod {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(l)
	return l, nil
}

// L returns the logger installed by Init (a no-op logger before that).
func L() *zap.Logger { return zap.L() }
