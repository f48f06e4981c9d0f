package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no resource for the ID you specified")
	ErrValidation       = errors.New("invalid data")
	ErrRemote           = errors.New("the remote store could not complete the operation")
)
