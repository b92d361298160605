package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/juju/errors"
)

func makeRootContext() (context.Context, context.CancelFunc) {
	rootCtx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)

	go func() {
		for range sigChan {
			cancel()
		}
	}()

	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	return rootCtx, cancel
}

func makeBasicAuth(handler http.Handler, credentials string) (http.Handler, error) {
	user, password, found := strings.Cut(credentials, ":")
	if !found {
		return nil, errors.Errorf("Incorrect credentials %s, user:password expected",
			credentials)
	}

	return &basicAuthMiddleware{
		handler:  handler,
		user:     []byte(user),
		password: []byte(password),
	}, nil
}
