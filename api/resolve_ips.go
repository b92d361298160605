package api

import (
	"encoding/json"
	"net"
	"net/http"

	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"

	"github.com/9seconds/gazetteer/geolib"
)

func resolveIPs(opts geolib.BatchOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolver := getResolver(r)

		requestBody := ipResolveRequestStruct{}
		err := json.NewDecoder(r.Body).Decode(&requestBody)
		if err != nil {
			abort(w, http.StatusNotAcceptable, err.Error())
			return
		}
		if len(requestBody.Ips) == 0 {
			abort(w, http.StatusNotAcceptable, "Please provide ips to resolve")
			return
		}

		results, err := resolver.LookupBatch(r.Context(), requestBody.Ips, opts)
		if err != nil {
			abortResolveError(w, err)
			return
		}

		response := ipResolveResponseStruct{Results: results}
		if err := json.NewEncoder(w).Encode(response); err != nil {
			log.Errorf("Cannot write response: %s", err.Error())
		}
	}
}

func resolveIP(w http.ResponseWriter, r *http.Request) {
	resolver := getResolver(r)

	addr := chi.URLParam(r, "addr")
	if net.ParseIP(addr) == nil {
		abort(w, http.StatusNotAcceptable, "Cannot parse "+addr+" as IP")
		return
	}

	details, err := resolver.Lookup(r.Context(), addr)
	if err != nil {
		abortResolveError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(details); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}
