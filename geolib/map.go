package geolib

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// MaxMapAddresses is the hard cap of the map report endpoint.
const MaxMapAddresses = 500000

// GetMapReport submits a list of IP addresses to the map tool and
// returns a URL of the generated report. Lists over MaxMapAddresses
// entries are rejected locally before any network call.
func (c *Client) GetMapReport(ctx context.Context, addrs []string) (string, error) {
	if len(addrs) > MaxMapAddresses {
		return "", newError(KindLimitExceeded,
			fmt.Sprintf("%d addresses given, at most %d accepted",
				len(addrs), MaxMapAddresses),
			nil)
	}

	encoded, err := json.Marshal(addrs)
	if err != nil {
		return "", newError(KindParse, "cannot encode addresses", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/tools/map", bytes.NewReader(encoded))
	if err != nil {
		return "", newError(KindTransport, "cannot build a request", err)
	}

	body, err := c.issue(c.http, req)
	if err != nil {
		return "", err
	}

	report := struct {
		ReportURL string `json:"reportUrl"`
	}{}

	if err := json.Unmarshal(body, &report); err != nil {
		return "", newError(KindParse, "cannot parse a response", err)
	}

	return report.ReportURL, nil
}
