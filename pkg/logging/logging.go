package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger = zap.NewNop()

// Options selects the logger flavour.
type Options struct {
	Debug      bool // Development console output at debug level.
	Quiet      bool // Only warnings and errors.
	AppName    string
	AppVersion string
}

// Setup builds the process logger, installs it as the zap global and returns it.
// On failure the previous logger stays in place.
func Setup(opts Options) (*zap.Logger, error) {
	var cfg zap.Config
	if opts.Debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		if opts.Quiet {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		}
	}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    opts.AppName,
		"appVersion": opts.AppVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return Logger, err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return Logger, nil
}
