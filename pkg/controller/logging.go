package controller

import (
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// zerologAdapter routes retryablehttp's logging into the global logger.
type zerologAdapter struct{}

var _ retryablehttp.LeveledLogger = zerologAdapter{}

func (zerologAdapter) Error(msg string, keysAndValues ...interface{}) {
	event(zerolog.ErrorLevel, msg, keysAndValues)
}

func (zerologAdapter) Info(msg string, keysAndValues ...interface{}) {
	event(zerolog.DebugLevel, msg, keysAndValues)
}

func (zerologAdapter) Debug(msg string, keysAndValues ...interface{}) {
	event(zerolog.TraceLevel, msg, keysAndValues)
}

func (zerologAdapter) Warn(msg string, keysAndValues ...interface{}) {
	event(zerolog.WarnLevel, msg, keysAndValues)
}

func event(level zerolog.Level, msg string, keysAndValues []interface{}) {
	e := log.WithLevel(level)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			e = e.Interface(key, keysAndValues[i+1])
		}
	}
	e.Msg(msg)
}
