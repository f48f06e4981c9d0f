package httputil

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/go-sqlite"
	"github.com/pocketledger/backend/pkg/models"
	"github.com/rs/zerolog/log"
)

var (
	ErrRequestBodyEmpty   = errors.New("request body must not be empty")
	ErrInvalidBody        = errors.New("the body of your request contains invalid or un-parseable data. Please check and try again")
	ErrInvalidQueryString = errors.New("the query string contains unparseable data. Please check the values")
)

// HTTPError is used for error responses that contain a body.
type HTTPError struct {
	Error string `json:"error" example:"there is no resource for the ID you specified"`
}

// NewError writes an HTTPError with the given status.
func NewError(c *gin.Context, status int, err error) {
	c.JSON(status, HTTPError{
		Error: err.Error(),
	})
}

// Status returns the HTTP status for an error returned by the ledgers.
func Status(err error) int {
	var numErr *strconv.NumError
	var timeErr *time.ParseError

	switch {
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, ErrRequestBodyEmpty),
		errors.Is(err, ErrInvalidBody),
		errors.Is(err, ErrInvalidQueryString),
		errors.As(err, &numErr),
		errors.As(err, &timeErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler writes the error response for err.
//
// Server side errors are logged with the request ID, their details are
// not exposed to the client.
func ErrorHandler(c *gin.Context, err error) {
	if errors.Is(err, io.EOF) {
		err = ErrRequestBodyEmpty
	}

	status := Status(err)
	if status != http.StatusInternalServerError {
		NewError(c, status, err)
		return
	}

	requestID := requestid.Get(c)
	log.Error().Str("request-id", requestID).Msgf("%T: %v", err, err.Error())

	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		NewError(c, status, fmt.Errorf("a database error occurred during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestID))
		return
	}

	if errors.Is(err, models.ErrRemote) {
		NewError(c, status, fmt.Errorf("%w. The request id is '%v', send this to your server administrator to help them finding the problem", models.ErrRemote, requestID))
		return
	}

	NewError(c, status, fmt.Errorf("an error occurred on the server during your request, please contact your server administrator. The request id is '%v', send this to your server administrator to help them finding the problem", requestID))
}
