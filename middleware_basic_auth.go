package main

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

type basicAuthMiddleware struct {
	handler  http.Handler
	user     []byte
	password []byte
}

func (b *basicAuthMiddleware) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	user, pass, _ := req.BasicAuth()

	userBytes := []byte(user)
	passBytes := []byte(pass)

	if subtle.ConstantTimeCompare(b.user, userBytes)+subtle.ConstantTimeCompare(b.password, passBytes) == 2 {
		b.handler.ServeHTTP(w, req)

		return
	}

	// the same error shape the api package responds with
	msg, _ := json.Marshal(map[string]string{
		"error": "Authentication is required",
	})

	w.Header().Set("WWW-Authenticate", `Basic realm="gazetteer"`)
	http.Error(w, string(msg), http.StatusUnauthorized)
}
