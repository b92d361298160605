package geolib

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
)

// Lookup resolves a single IP address.
//
// Bogon addresses are classified locally and short-circuit both the
// cache and the network. A cache hit returns a copy of the stored
// record. A cache miss goes to the remote service, the response is
// joined with the reference tables and written through to the cache.
func (c *Client) Lookup(ctx context.Context, addr string) (*Details, error) {
	return c.lookupOne(ctx, addr, c.baseURL)
}

// LookupSelf resolves the caller's own IP address via the "me"
// endpoint. Otherwise it follows the Lookup contract.
func (c *Client) LookupSelf(ctx context.Context) (*Details, error) {
	return c.lookupOne(ctx, "me", c.baseURL)
}

// LookupSelfV6 is LookupSelf over the IPv6 endpoint.
func (c *Client) LookupSelfV6(ctx context.Context) (*Details, error) {
	return c.lookupOne(ctx, "me", c.baseURLv6)
}

func (c *Client) lookupOne(ctx context.Context, addr, baseURL string) (*Details, error) {
	if IsBogon(addr) {
		return &Details{IP: addr, Bogon: true}, nil
	}

	if cached, ok := c.cache.get(addr); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		baseURL+"/"+addr, nil)
	if err != nil {
		return nil, newError(KindTransport, "cannot build a request", err)
	}

	body, err := c.issue(c.http, req)
	if err != nil {
		c.logger.LookupError(addr, err)
		return nil, err
	}

	details := &Details{}

	if err := json.Unmarshal(body, details); err != nil {
		return nil, newError(KindParse, "cannot parse a response", err)
	}

	if err := c.tables.Populate(details); err != nil {
		c.logger.LookupError(addr, err)
		return nil, err
	}

	c.cache.put(addr, details)

	return details, nil
}

// issue sends a request and returns a response body with HTTP-level and
// application-level errors already mapped. 429 is a rate limit error,
// any other non-2xx status is a transport error, an `error` field in an
// otherwise fine body is a request error.
func (c *Client) issue(client HTTPClient, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, newError(KindTransport, "cannot send a request", err)
	}

	defer func() {
		io.Copy(ioutil.Discard, resp.Body) // nolint: errcheck
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, newError(KindRateLimit, "", nil)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newError(KindTransport,
			"unexpected status "+resp.Status, nil)
	}

	body, err := ioutil.ReadAll(bufio.NewReader(resp.Body))
	if err != nil {
		return nil, newError(KindTransport, "cannot read a response", err)
	}

	probe := struct {
		Error string `json:"error"`
	}{}

	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, newError(KindParse, "cannot parse a response", err)
	}

	if probe.Error != "" {
		return nil, newError(KindRequest, probe.Error, nil)
	}

	return body, nil
}
