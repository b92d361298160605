package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

func selfResolveIP(w http.ResponseWriter, r *http.Request) {
	resolver := getResolver(r)

	details, err := resolver.LookupSelf(r.Context())
	if err != nil {
		abortResolveError(w, err)
		return
	}

	if err := json.NewEncoder(w).Encode(details); err != nil {
		log.Errorf("Cannot write response: %s", err.Error())
	}
}
