package test

import (
	"encoding/json"
	"testing"

	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/stretchr/testify/assert"
)

// DecodeError returns the error message of an error response body.
func DecodeError(t *testing.T, s []byte) string {
	var r httputil.HTTPError
	if err := json.Unmarshal(s, &r); err != nil {
		assert.Fail(t, "Not valid JSON!", "%s", s)
	}

	return r.Error
}
