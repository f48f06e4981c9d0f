package controllers_test

import (
	"net/http"

	"github.com/pocketledger/backend/pkg/models"
	"github.com/pocketledger/backend/test"
)

func (suite *TestSuiteStandard) TestHealthzSuccess() {
	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/healthz", "")
	assertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestHealthzOptions() {
	r := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/api/healthz", "")
	assertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestHealthzFail() {
	suite.CloseDB()

	r := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/api/healthz", "")
	assertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
	suite.Assert().Contains(test.DecodeError(suite.T(), r.Body.Bytes()), models.ErrRemote.Error())
}
