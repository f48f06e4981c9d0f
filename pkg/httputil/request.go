package httputil

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pocketledger/backend/internal/types"
	"github.com/rs/zerolog/log"
)

// ContextKey is the type for keys of values set on the gin context.
type ContextKey string

const (
	ContextURL   ContextKey = "requestURL"
	ContextOwner ContextKey = "owner"
)

// Owner returns the owner the request is authorized for.
func Owner(c *gin.Context) string {
	return c.GetString(string(ContextOwner))
}

// BindData binds the JSON body of the request to data.
func BindData(c *gin.Context, data any) error {
	if err := c.ShouldBindJSON(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrRequestBodyEmpty
		}

		var jsonUnmarshalTypeError *json.UnmarshalTypeError
		if errors.As(err, &jsonUnmarshalTypeError) {
			return errors.Join(ErrInvalidBody, err)
		}

		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return ErrInvalidBody
	}

	return nil
}

// DateRange reads the inclusive range from the fromDate and untilDate query parameters.
//
// Both accept YYYY-MM-DD or RFC3339 and may be omitted.
func DateRange(c *gin.Context) (types.DateRange, error) {
	var r types.DateRange
	var err error

	if from := c.Query("fromDate"); from != "" {
		r.From, err = types.ParseDate(from)
		if err != nil {
			return r, errors.Join(ErrInvalidQueryString, err)
		}
	}

	if until := c.Query("untilDate"); until != "" {
		r.Until, err = types.ParseDate(until)
		if err != nil {
			return r, errors.Join(ErrInvalidQueryString, err)
		}
	}

	if !r.Valid() {
		return r, errors.Join(ErrInvalidQueryString, errors.New("untilDate must not be before fromDate"))
	}

	return r, nil
}
