package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldSource tells whether a result came from the remote service or the local scorer.
	FieldSource = "score_source"
	// FieldRemoteURL is the base URL of the remote scoring service.
	FieldRemoteURL = "remote_url"
	// FieldAnswers is the number of answered questions in a scoring call.
	FieldAnswers = "answers"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the pairs into zap fields, trimming whitespace and
// dropping entries with an empty key or value.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to the logger. A nil logger becomes a no-op
// logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// RemoteFields describes the remote scoring service a component talks to.
func RemoteFields(baseURL string) []zap.Field {
	return StringFields(StringField{Key: FieldRemoteURL, Value: baseURL})
}

// WithRemote attaches the remote service fields to the logger.
func WithRemote(logger *zap.Logger, baseURL string) *zap.Logger {
	return WithFields(logger, RemoteFields(baseURL)...)
}
