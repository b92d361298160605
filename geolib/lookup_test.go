package geolib_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/9seconds/gazetteer/geolib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

const googleDNSResponse = `{
  "ip": "8.8.8.8",
  "hostname": "dns.google",
  "anycast": true,
  "city": "Mountain View",
  "region": "California",
  "country": "US",
  "loc": "37.4056,-122.0775",
  "org": "AS15169 Google LLC",
  "postal": "94043",
  "timezone": "America/Los_Angeles",
  "readme": "https://example.com/missingauth"
}`

type LookupTestSuite struct {
	MockedClientTestSuite
}

func (suite *LookupTestSuite) TestOk() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusOK, googleDNSResponse))

	details, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.NoError(err)
	suite.Equal("8.8.8.8", details.IP)
	suite.Equal("dns.google", details.Hostname)
	suite.True(details.Anycast)
	suite.Equal("Mountain View", details.City)
	suite.Equal("US", details.CountryCode)

	suite.Equal("United States", details.CountryName)
	suite.False(details.IsEU)
	suite.Require().NotNil(details.CountryFlag)
	suite.Equal("🇺🇸", details.CountryFlag.Emoji)
	suite.Equal(
		"https://cdn.ipinfo.io/static/images/countries-flags/US.svg",
		details.CountryFlagURL)
	suite.Require().NotNil(details.CountryCurrency)
	suite.Equal("USD", details.CountryCurrency.Code)
	suite.Require().NotNil(details.Continent)
	suite.Equal("NA", details.Continent.Code)

	suite.JSONEq(`"https://example.com/missingauth"`,
		string(details.Extra["readme"]))
}

func (suite *LookupTestSuite) TestSecondLookupComesFromCache() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusOK, googleDNSResponse))

	first, err := suite.client.Lookup(context.Background(), "8.8.8.8")
	suite.NoError(err)

	second, err := suite.client.Lookup(context.Background(), "8.8.8.8")
	suite.NoError(err)

	suite.Equal(1, httpmock.GetTotalCallCount())

	firstEncoded, _ := json.Marshal(first)
	secondEncoded, _ := json.Marshal(second)
	suite.Equal(firstEncoded, secondEncoded)
}

func (suite *LookupTestSuite) TestBogonShortCircuits() {
	for _, v := range []string{"127.0.0.1", "192.168.1.1", "::1"} {
		details, err := suite.client.Lookup(context.Background(), v)

		suite.NoError(err)
		suite.True(details.Bogon)
		suite.Equal(v, details.IP)
		suite.Empty(details.City)
		suite.Empty(details.CountryCode)
		suite.Nil(details.CountryFlag)
	}

	suite.Equal(0, httpmock.GetTotalCallCount())
}

func (suite *LookupTestSuite) TestHeaders() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		func(req *http.Request) (*http.Response, error) {
			suite.Equal("Bearer token", req.Header.Get("Authorization"))
			suite.Equal("application/json", req.Header.Get("Accept"))
			suite.Equal("application/json", req.Header.Get("Content-Type"))
			suite.Contains(req.Header.Get("User-Agent"), "gazetteer/")

			return httpmock.NewStringResponse(http.StatusOK,
				googleDNSResponse), nil
		})

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.NoError(err)
}

func (suite *LookupTestSuite) TestRateLimited() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusTooManyRequests, ""))

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.Error(err)
	suite.Equal(geolib.KindRateLimit, geolib.KindOf(err))
}

func (suite *LookupTestSuite) TestTransportError() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.Error(err)
	suite.Equal(geolib.KindTransport, geolib.KindOf(err))
}

func (suite *LookupTestSuite) TestRequestError() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusOK,
			`{"error": "Unknown token"}`))

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.Error(err)
	suite.Equal(geolib.KindRequest, geolib.KindOf(err))
	suite.Contains(err.Error(), "Unknown token")
}

func (suite *LookupTestSuite) TestBadJSON() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusOK, `{[`))

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.Error(err)
	suite.Equal(geolib.KindParse, geolib.KindOf(err))
}

func (suite *LookupTestSuite) TestFailedLookupIsNotCached() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")
	suite.Error(err)

	httpmock.Reset()
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusOK, googleDNSResponse))

	details, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.NoError(err)
	suite.Equal("dns.google", details.Hostname)
}

func (suite *LookupTestSuite) TestUnknownCountryCode() {
	httpmock.RegisterResponder("GET", testBaseURL+"/8.8.8.8",
		httpmock.NewStringResponder(http.StatusOK,
			`{"ip": "8.8.8.8", "country": "ZZ"}`))

	_, err := suite.client.Lookup(context.Background(), "8.8.8.8")

	suite.Error(err)
	suite.Equal(geolib.KindDataIntegrity, geolib.KindOf(err))
}

func (suite *LookupTestSuite) TestSelf() {
	httpmock.RegisterResponder("GET", testBaseURL+"/me",
		httpmock.NewStringResponder(http.StatusOK, googleDNSResponse))

	details, err := suite.client.LookupSelf(context.Background())

	suite.NoError(err)
	suite.Equal("8.8.8.8", details.IP)
}

func (suite *LookupTestSuite) TestSelfV6() {
	httpmock.RegisterResponder("GET", testBaseURLv6+"/me",
		httpmock.NewStringResponder(http.StatusOK,
			`{"ip": "2001:4860:4860::8888", "country": "US"}`))

	details, err := suite.client.LookupSelfV6(context.Background())

	suite.NoError(err)
	suite.Equal("2001:4860:4860::8888", details.IP)
	suite.Equal("United States", details.CountryName)
}

func TestLookup(t *testing.T) {
	suite.Run(t, &LookupTestSuite{})
}
