package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FieldClientVersion = "client_version"
	FieldSiteID        = "nid"
	FieldBackupID      = "bid"
)

func NewLogger(format string, level zapcore.Level) (*zap.SugaredLogger, error) {
	var loggerConfig zap.Config

	if format == "json" {
		loggerConfig = zap.NewProductionConfig()
	} else {
		loggerConfig = zap.NewDevelopmentConfig()
	}
	loggerConfig.DisableStacktrace = true
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.ErrorOutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zaplog, err := loggerConfig.Build()
	if err != nil {
		return nil, err
	}

	return zaplog.Sugar(), nil
}
