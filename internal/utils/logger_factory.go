package utils

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	unsupportedLogLevelTemplateConstant  = "unsupported log level %q"
	unsupportedLogFormatTemplateConstant = "unsupported log format %q"
	jsonEncodingNameConstant             = "json"
	consoleEncodingNameConstant          = "console"
)

// LogLevel selects the minimum severity emitted by a created logger.
type LogLevel string

// LogFormat selects the output encoding of a created logger.
type LogFormat string

// Supported logger settings.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"

	LogFormatStructured LogFormat = "structured"
	LogFormatConsole    LogFormat = "console"
)

// LoggerFactory builds zap loggers from configured level and format names.
type LoggerFactory struct{}

// NewLoggerFactory constructs a LoggerFactory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{}
}

// CreateLogger builds a logger writing to standard error at the requested
// level and encoding. Unknown names are rejected rather than defaulted so a
// configuration typo never silences logging.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	zapLevel, levelError := resolveLogLevel(requestedLogLevel)
	if levelError != nil {
		return nil, levelError
	}

	encodingName, encodingError := resolveLogEncoding(requestedLogFormat)
	if encodingError != nil {
		return nil, encodingError
	}

	loggerConfiguration := zap.NewProductionConfig()
	loggerConfiguration.Level = zap.NewAtomicLevelAt(zapLevel)
	loggerConfiguration.Encoding = encodingName
	loggerConfiguration.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return loggerConfiguration.Build()
}

func resolveLogLevel(requestedLogLevel LogLevel) (zapcore.Level, error) {
	switch requestedLogLevel {
	case LogLevelDebug:
		return zapcore.DebugLevel, nil
	case LogLevelInfo:
		return zapcore.InfoLevel, nil
	case LogLevelWarn:
		return zapcore.WarnLevel, nil
	case LogLevelError:
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InvalidLevel, fmt.Errorf(unsupportedLogLevelTemplateConstant, string(requestedLogLevel))
	}
}

func resolveLogEncoding(requestedLogFormat LogFormat) (string, error) {
	switch requestedLogFormat {
	case LogFormatStructured:
		return jsonEncodingNameConstant, nil
	case LogFormatConsole:
		return consoleEncodingNameConstant, nil
	default:
		return "", fmt.Errorf(unsupportedLogFormatTemplateConstant, string(requestedLogFormat))
	}
}
