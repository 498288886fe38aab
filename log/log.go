package log

import (
	stdlog "log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	Logger  *zap.Logger
	Trace   *stdlog.Logger
	Info    *stdlog.Logger
	Warning *stdlog.Logger
	Error   *stdlog.Logger
)

func init() {
	use(zap.NewNop())
}

// InitLog builds the process logger. mode "release" selects the zap
// production config; anything else gets the development config.
// DIGITREC_TRACE turns on debug level output in release mode.
func InitLog(mode string) error {
	var config zap.Config

	if mode == "release" {
		config = zap.NewProductionConfig()
		if os.Getenv("DIGITREC_TRACE") != "" {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := config.Build()
	if err != nil {
		return err
	}

	use(logger)
	return nil
}

// SetLogger replaces the backing logger. nil mutes all output.
func SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	use(logger)
}

func use(logger *zap.Logger) {
	Logger = logger
	Trace = mustStdLog(logger, zapcore.DebugLevel)
	Info = mustStdLog(logger, zapcore.InfoLevel)
	Warning = mustStdLog(logger, zapcore.WarnLevel)
	Error = mustStdLog(logger, zapcore.ErrorLevel)
}

func mustStdLog(logger *zap.Logger, level zapcore.Level) *stdlog.Logger {
	l, err := zap.NewStdLogAt(logger, level)
	if err != nil {
		// only fails for levels zap does not know
		panic(err)
	}
	return l
}

func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}
