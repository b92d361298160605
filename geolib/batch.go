package geolib

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

const (
	// DefaultBatchSize is a number of addresses sent in one chunk of a
	// batch lookup.
	DefaultBatchSize = 1000

	// DefaultTimeoutPerChunk bounds every single chunk request of a
	// batch lookup.
	DefaultTimeoutPerChunk = 5 * time.Second
)

// BatchOptions tune LookupBatch. A zero value means defaults: chunks of
// DefaultBatchSize, DefaultTimeoutPerChunk per chunk, no total
// deadline.
type BatchOptions struct {
	BatchSize       int
	TimeoutPerChunk time.Duration

	// TimeoutTotal bounds the whole multi-chunk sequence. Zero means
	// unbounded. A breach aborts the in-flight chunk and discards every
	// accumulated result.
	TimeoutTotal time.Duration
}

func (b BatchOptions) withDefaults() BatchOptions {
	if b.BatchSize <= 0 {
		b.BatchSize = DefaultBatchSize
	}

	if b.TimeoutPerChunk <= 0 {
		b.TimeoutPerChunk = DefaultTimeoutPerChunk
	}

	return b
}

// LookupBatch resolves a list of IP addresses in one call.
//
// Bogon addresses and cache hits are answered locally. The remaining
// addresses are deduplicated, split into chunks of BatchSize and sent
// sequentially, one in-flight request at a time, each under its own
// per-chunk deadline. A failure of any chunk fails the whole call:
// partial results are never returned and the cache is not touched.
func (c *Client) LookupBatch(ctx context.Context,
	addrs []string,
	opts BatchOptions) (map[string]*Details, error) {
	opts = opts.withDefaults()

	results := make(map[string]*Details, len(addrs))
	seen := make(map[string]struct{}, len(addrs))
	candidates := make([]string, 0, len(addrs))

	for _, addr := range addrs {
		if _, ok := results[addr]; ok {
			continue
		}

		if IsBogon(addr) {
			results[addr] = &Details{IP: addr, Bogon: true}
			continue
		}

		if cached, ok := c.cache.get(addr); ok {
			results[addr] = cached
			continue
		}

		if _, ok := seen[addr]; ok {
			continue
		}

		seen[addr] = struct{}{}
		candidates = append(candidates, addr)
	}

	if len(candidates) == 0 {
		return results, nil
	}

	if opts.TimeoutTotal > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, opts.TimeoutTotal)
		defer cancel()
	}

	transport := c.transport(opts.TimeoutPerChunk)
	fetched := make(map[string]*Details, len(candidates))

	for start := 0; start < len(candidates); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(candidates) {
			end = len(candidates)
		}

		if err := ctx.Err(); err != nil {
			return nil, newError(KindTimeout, "batch deadline exceeded", err)
		}

		if err := c.lookupChunk(ctx, transport, candidates[start:end], fetched); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, newError(KindTimeout, "batch deadline exceeded", ctxErr)
			}

			return nil, err
		}
	}

	for _, details := range fetched {
		if err := c.tables.Populate(details); err != nil {
			return nil, err
		}
	}

	for addr, details := range fetched {
		c.cache.put(addr, details)
		results[addr] = details
	}

	return results, nil
}

func (c *Client) lookupChunk(ctx context.Context,
	transport HTTPClient,
	chunk []string,
	into map[string]*Details) error {
	encoded, err := json.Marshal(chunk)
	if err != nil {
		return newError(KindParse, "cannot encode a chunk", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/batch", bytes.NewReader(encoded))
	if err != nil {
		return newError(KindTransport, "cannot build a request", err)
	}

	body, err := c.issue(transport, req)
	if err != nil {
		return err
	}

	resolved := map[string]*Details{}

	if err := json.Unmarshal(body, &resolved); err != nil {
		return newError(KindParse, "cannot parse a response", err)
	}

	for addr, details := range resolved {
		if details == nil {
			return newError(KindParse,
				"empty record for address "+addr, nil)
		}

		into[addr] = details
	}

	return nil
}
