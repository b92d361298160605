package geolib_test

import (
	"net/http"

	"github.com/9seconds/gazetteer/geolib"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/suite"
)

const (
	testBaseURL   = "https://geo.example.com"
	testBaseURLv6 = "https://v6.geo.example.com"
)

type MockedClientTestSuite struct {
	suite.Suite

	client *geolib.Client
}

func (suite *MockedClientTestSuite) SetupSuite() {
	httpmock.Activate()
}

func (suite *MockedClientTestSuite) TearDownSuite() {
	httpmock.DeactivateAndReset()
}

func (suite *MockedClientTestSuite) SetupTest() {
	client, err := geolib.New(geolib.Config{
		Token:      "token",
		BaseURL:    testBaseURL,
		BaseURLv6:  testBaseURLv6,
		HTTPClient: &http.Client{},
	})

	suite.Require().NoError(err)

	suite.client = client
}

func (suite *MockedClientTestSuite) TearDownTest() {
	httpmock.Reset()
}
