package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/9seconds/gazetteer/geolib"
)

type stubResolver struct {
	lookupErr error
}

func (s *stubResolver) Lookup(_ context.Context, addr string) (*geolib.Details, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}

	return &geolib.Details{IP: addr, CountryCode: "US"}, nil
}

func (s *stubResolver) LookupSelf(_ context.Context) (*geolib.Details, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}

	return &geolib.Details{IP: "93.184.216.34", CountryCode: "US"}, nil
}

func (s *stubResolver) LookupBatch(_ context.Context,
	addrs []string,
	_ geolib.BatchOptions) (map[string]*geolib.Details, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}

	results := make(map[string]*geolib.Details, len(addrs))
	for _, addr := range addrs {
		results[addr] = &geolib.Details{IP: addr, CountryCode: "US"}
	}

	return results, nil
}

func makeTestServer(resolver Resolver) *httptest.Server {
	return httptest.NewServer(MakeServer(resolver, geolib.BatchOptions{}))
}

func TestResolveIP(t *testing.T) {
	srv := makeTestServer(&stubResolver{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/8.8.8.8")
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	details := geolib.Details{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&details))
	assert.Equal(t, "8.8.8.8", details.IP)
	assert.Equal(t, "US", details.CountryCode)
}

func TestResolveIPMalformed(t *testing.T) {
	srv := makeTestServer(&stubResolver{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/not-an-ip")
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
}

func TestResolveSelf(t *testing.T) {
	srv := makeTestServer(&stubResolver{})
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	details := geolib.Details{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&details))
	assert.Equal(t, "93.184.216.34", details.IP)
}

func TestResolveIPs(t *testing.T) {
	srv := makeTestServer(&stubResolver{})
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json",
		strings.NewReader(`{"ips": ["8.8.8.8", "1.1.1.1"]}`))
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	response := ipResolveResponseStruct{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.Len(t, response.Results, 2)
	assert.Equal(t, "8.8.8.8", response.Results["8.8.8.8"].IP)
}

func TestResolveIPsEmpty(t *testing.T) {
	srv := makeTestServer(&stubResolver{})
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json",
		strings.NewReader(`{"ips": []}`))
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
}

func TestResolveIPsMalformed(t *testing.T) {
	srv := makeTestServer(&stubResolver{})
	defer srv.Close()

	resp, err := http.Post(srv.URL, "application/json",
		strings.NewReader(`{"ips": ["garbage"]}`))
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
}

func TestErrorStatuses(t *testing.T) {
	statuses := map[geolib.ErrorKind]int{
		geolib.KindRateLimit:     http.StatusTooManyRequests,
		geolib.KindTimeout:       http.StatusGatewayTimeout,
		geolib.KindTransport:     http.StatusBadGateway,
		geolib.KindLimitExceeded: http.StatusRequestEntityTooLarge,
		geolib.KindUnknown:       http.StatusInternalServerError,
	}

	for kind, status := range statuses {
		assert.Equal(t, status, statusFromKind(kind), kind.String())
	}
}

func TestResolveIPUpstreamFailure(t *testing.T) {
	srv := makeTestServer(&stubResolver{
		lookupErr: geolib.NewError(geolib.KindRateLimit, "too many requests", nil),
	})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/8.8.8.8")
	assert.Nil(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	payload := map[string]string{}
	assert.Nil(t, json.NewDecoder(resp.Body).Decode(&payload))
	assert.Contains(t, payload["error"], "too many requests")
}
