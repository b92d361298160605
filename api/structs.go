package api

import (
	"encoding/json"
	"net"

	"github.com/juju/errors"

	"github.com/9seconds/gazetteer/geolib"
)

type ipResolveResponseStruct struct {
	Results map[string]*geolib.Details `json:"results"`
}

type ipResolveRequestStruct struct {
	Ips []string
}

func (req *ipResolveRequestStruct) UnmarshalJSON(text []byte) error {
	raw := struct {
		Ips []string `json:"ips"`
	}{}
	err := json.Unmarshal(text, &raw)
	if err != nil {
		return err
	}

	req.Ips = make([]string, 0, len(raw.Ips))
	for _, v := range raw.Ips {
		if net.ParseIP(v) == nil {
			return errors.Errorf("Cannot parse %s as IP", v)
		}
		req.Ips = append(req.Ips, v)
	}

	return nil
}
