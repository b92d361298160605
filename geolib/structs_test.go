package geolib_test

import (
	"encoding/json"
	"testing"

	"github.com/9seconds/gazetteer/geolib"
	"github.com/stretchr/testify/suite"
)

type DetailsTestSuite struct {
	suite.Suite
}

func (suite *DetailsTestSuite) TestUnmarshalKnownFields() {
	details := geolib.Details{}

	err := json.Unmarshal([]byte(`{
  "ip": "23.22.13.113",
  "hostname": "ec2-23-22-13-113.compute-1.amazonaws.com",
  "city": "Virginia Beach",
  "region": "Virginia",
  "country": "US",
  "loc": "36.7957,-76.0126",
  "org": "AS14618 Amazon.com, Inc.",
  "postal": "23479",
  "timezone": "America/New_York",
  "asn": {"asn": "AS14618", "name": "Amazon.com, Inc.", "domain": "amazon.com", "route": "23.20.0.0/14", "type": "hosting"}
}`), &details)

	suite.NoError(err)
	suite.Equal("23.22.13.113", details.IP)
	suite.Equal("Virginia Beach", details.City)
	suite.Equal("US", details.CountryCode)
	suite.Equal("America/New_York", details.Timezone)
	suite.Require().NotNil(details.ASN)
	suite.Equal("AS14618", details.ASN.ASN)
	suite.Equal("hosting", details.ASN.Type)
	suite.Nil(details.Extra)
}

func (suite *DetailsTestSuite) TestUnmarshalKeepsUnknownFields() {
	details := geolib.Details{}

	err := json.Unmarshal([]byte(`{
  "ip": "23.22.13.113",
  "country": "US",
  "readme": "https://example.com/missingauth",
  "some_new_group": {"a": 1}
}`), &details)

	suite.NoError(err)
	suite.Len(details.Extra, 2)
	suite.JSONEq(`"https://example.com/missingauth"`,
		string(details.Extra["readme"]))
	suite.JSONEq(`{"a": 1}`, string(details.Extra["some_new_group"]))
}

func (suite *DetailsTestSuite) TestMarshalRoundTrip() {
	original := []byte(`{
  "ip": "23.22.13.113",
  "country": "US",
  "readme": "https://example.com/missingauth"
}`)
	details := geolib.Details{}

	suite.NoError(json.Unmarshal(original, &details))

	encoded, err := json.Marshal(&details)

	suite.NoError(err)
	suite.JSONEq(string(original), string(encoded))
}

func (suite *DetailsTestSuite) TestCloneIsDeep() {
	details := &geolib.Details{
		IP:          "8.8.8.8",
		CountryCode: "US",
		ASN:         &geolib.ASNDetails{ASN: "AS15169"},
		Domains: &geolib.DomainsDetails{
			Total:   2,
			Domains: []string{"a.example.com", "b.example.com"},
		},
		Extra: map[string]json.RawMessage{
			"readme": json.RawMessage(`"x"`),
		},
	}

	clone := details.Clone()

	suite.Equal(details, clone)

	clone.ASN.ASN = "AS0"
	clone.Domains.Domains[0] = "changed"
	clone.Extra["readme"] = json.RawMessage(`"y"`)

	suite.Equal("AS15169", details.ASN.ASN)
	suite.Equal("a.example.com", details.Domains.Domains[0])
	suite.Equal(json.RawMessage(`"x"`), details.Extra["readme"])
}

func (suite *DetailsTestSuite) TestCloneNil() {
	var details *geolib.Details

	suite.Nil(details.Clone())
}

func TestDetails(t *testing.T) {
	suite.Run(t, &DetailsTestSuite{})
}
