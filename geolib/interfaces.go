package geolib

import "net/http"

// Version of the library. It is a part of the default user agent
// string.
const Version = "1.0.0"

// HTTPClient is an interface for a client which issues requests to the
// remote service. http.Client satisfies it.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Logger is a logging facade of the library. Lookup failures are
// returned to a caller anyway, so implementations are purely for
// observability. See NoopLogger.
type Logger interface {
	LookupError(addr string, err error)
	CacheEvicted(key string)
}

// NoopLogger is a Logger which discards everything.
type NoopLogger struct{}

func (n NoopLogger) LookupError(addr string, err error) {}

func (n NoopLogger) CacheEvicted(key string) {}
