package main

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/9seconds/gazetteer/geolib"
)

type logger struct {
	lookupLog zerolog.Logger
	cacheLog  zerolog.Logger
}

func (l *logger) LookupError(addr string, err error) {
	l.lookupLog.Error().Str("addr", addr).Err(err).Msg("")
}

func (l *logger) CacheEvicted(key string) {
	l.cacheLog.Debug().Str("key", key).Msg("Record was evicted")
}

func newLogger() geolib.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	return &logger{
		lookupLog: zerolog.New(os.Stderr).With().Timestamp().Stack().Str("event_name", "lookup").Logger(),
		cacheLog:  zerolog.New(os.Stderr).With().Timestamp().Stack().Str("event_name", "cache").Logger(),
	}
}
