package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/9seconds/gazetteer/geolib"
)

type contextKey string

const contextKeyResolver = contextKey("resolver")

// Resolver is what the HTTP facade needs from a geolocation client.
type Resolver interface {
	Lookup(ctx context.Context, addr string) (*geolib.Details, error)
	LookupSelf(ctx context.Context) (*geolib.Details, error)
	LookupBatch(ctx context.Context, addrs []string,
		opts geolib.BatchOptions) (map[string]*geolib.Details, error)
}

func MakeServer(resolver Resolver, opts geolib.BatchOptions) *chi.Mux {
	router := chi.NewRouter()

	ctxResolver := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), contextKeyResolver, resolver)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}

	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Recoverer)
	router.Use(middleware.RealIP)
	router.Use(middleware.SetHeader("Content-Type", "application/json"))
	router.Use(ctxResolver)

	router.Get("/", selfResolveIP)
	router.Post("/", resolveIPs(opts))
	router.Get("/{addr}", resolveIP)

	return router
}

func getResolver(r *http.Request) Resolver {
	return r.Context().Value(contextKeyResolver).(Resolver)
}

func abort(w http.ResponseWriter, code int, message string) {
	msg, _ := json.Marshal(map[string]string{"error": message})
	http.Error(w, string(msg), code)
}

func abortResolveError(w http.ResponseWriter, err error) {
	abort(w, statusFromKind(geolib.KindOf(err)), err.Error())
}

func statusFromKind(kind geolib.ErrorKind) int {
	switch kind {
	case geolib.KindRequest:
		return http.StatusBadRequest
	case geolib.KindRateLimit:
		return http.StatusTooManyRequests
	case geolib.KindLimitExceeded:
		return http.StatusRequestEntityTooLarge
	case geolib.KindTimeout:
		return http.StatusGatewayTimeout
	case geolib.KindTransport, geolib.KindParse:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
