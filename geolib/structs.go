package geolib

import "encoding/json"

// Details is a single resolved record as the remote service returns it,
// plus enrichment fields filled from the reference tables.
//
// If Bogon is true, all other fields except IP keep their zero values.
//
// Fields the library does not know about are preserved verbatim in
// Extra so a newer service schema does not lose data on a round trip.
type Details struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname,omitempty"`
	Bogon    bool   `json:"bogon,omitempty"`
	Anycast  bool   `json:"anycast,omitempty"`
	City     string `json:"city,omitempty"`
	Region   string `json:"region,omitempty"`

	// CountryCode is a 2-letter ISO3166 code as resolved by the remote
	// service. The rest of the country-related fields are derived from
	// it locally.
	CountryCode     string    `json:"country,omitempty"`
	CountryName     string    `json:"country_name,omitempty"`
	IsEU            bool      `json:"is_eu,omitempty"`
	CountryFlag     *Flag     `json:"country_flag,omitempty"`
	CountryFlagURL  string    `json:"country_flag_url,omitempty"`
	CountryCurrency *Currency `json:"country_currency,omitempty"`
	Continent       *Continent `json:"continent,omitempty"`

	Loc      string `json:"loc,omitempty"`
	Org      string `json:"org,omitempty"`
	Postal   string `json:"postal,omitempty"`
	Timezone string `json:"timezone,omitempty"`

	ASN     *ASNDetails     `json:"asn,omitempty"`
	Company *CompanyDetails `json:"company,omitempty"`
	Carrier *CarrierDetails `json:"carrier,omitempty"`
	Privacy *PrivacyDetails `json:"privacy,omitempty"`
	Abuse   *AbuseDetails   `json:"abuse,omitempty"`
	Domains *DomainsDetails `json:"domains,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

type ASNDetails struct {
	ASN    string `json:"asn"`
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Route  string `json:"route"`
	Type   string `json:"type"`
}

type CompanyDetails struct {
	Name   string `json:"name"`
	Domain string `json:"domain"`
	Type   string `json:"type"`
}

type CarrierDetails struct {
	Name string `json:"name"`
	MCC  string `json:"mcc"`
	MNC  string `json:"mnc"`
}

type PrivacyDetails struct {
	VPN     bool   `json:"vpn"`
	Proxy   bool   `json:"proxy"`
	Tor     bool   `json:"tor"`
	Relay   bool   `json:"relay"`
	Hosting bool   `json:"hosting"`
	Service string `json:"service"`
}

type AbuseDetails struct {
	Address string `json:"address"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Network string `json:"network"`
	Phone   string `json:"phone"`
}

type DomainsDetails struct {
	IP      string   `json:"ip,omitempty"`
	Total   uint64   `json:"total"`
	Domains []string `json:"domains"`
}

// knownDetailsFields mirrors json tags of Details. Keep in sync when
// fields are added.
var knownDetailsFields = []string{
	"ip",
	"hostname",
	"bogon",
	"anycast",
	"city",
	"region",
	"country",
	"country_name",
	"is_eu",
	"country_flag",
	"country_flag_url",
	"country_currency",
	"continent",
	"loc",
	"org",
	"postal",
	"timezone",
	"asn",
	"company",
	"carrier",
	"privacy",
	"abuse",
	"domains",
}

func (d *Details) UnmarshalJSON(data []byte) error {
	type plain Details

	if err := json.Unmarshal(data, (*plain)(d)); err != nil {
		return err
	}

	extra := map[string]json.RawMessage{}

	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}

	for _, v := range knownDetailsFields {
		delete(extra, v)
	}

	if len(extra) > 0 {
		d.Extra = extra
	}

	return nil
}

func (d Details) MarshalJSON() ([]byte, error) {
	type plain Details

	encoded, err := json.Marshal(plain(d))
	if err != nil {
		return nil, err
	}

	if len(d.Extra) == 0 {
		return encoded, nil
	}

	merged := map[string]json.RawMessage{}

	if err := json.Unmarshal(encoded, &merged); err != nil {
		return nil, err
	}

	for k, v := range d.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}

	return json.Marshal(merged)
}

// Clone returns a deep copy of a record. Nested groups and the extra
// bag are copied, not shared.
func (d *Details) Clone() *Details {
	if d == nil {
		return nil
	}

	rv := *d

	if d.CountryFlag != nil {
		flag := *d.CountryFlag
		rv.CountryFlag = &flag
	}

	if d.CountryCurrency != nil {
		currency := *d.CountryCurrency
		rv.CountryCurrency = &currency
	}

	if d.Continent != nil {
		continent := *d.Continent
		rv.Continent = &continent
	}

	if d.ASN != nil {
		asn := *d.ASN
		rv.ASN = &asn
	}

	if d.Company != nil {
		company := *d.Company
		rv.Company = &company
	}

	if d.Carrier != nil {
		carrier := *d.Carrier
		rv.Carrier = &carrier
	}

	if d.Privacy != nil {
		privacy := *d.Privacy
		rv.Privacy = &privacy
	}

	if d.Abuse != nil {
		abuse := *d.Abuse
		rv.Abuse = &abuse
	}

	if d.Domains != nil {
		domains := *d.Domains
		domains.Domains = append([]string(nil), d.Domains.Domains...)
		rv.Domains = &domains
	}

	if d.Extra != nil {
		rv.Extra = make(map[string]json.RawMessage, len(d.Extra))

		for k, v := range d.Extra {
			rv.Extra[k] = append(json.RawMessage(nil), v...)
		}
	}

	return &rv
}
