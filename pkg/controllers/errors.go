package controllers

import (
	"fmt"

	"github.com/pocketledger/backend/pkg/httputil"
	"github.com/pocketledger/backend/pkg/models"
)

var (
	errTransactionTypeInvalid = fmt.Errorf("%w: the type must be '%s' or '%s'", httputil.ErrInvalidQueryString, models.Income, models.Expense)
	errCurrencyInvalid        = fmt.Errorf("%w: the currency must be a valid ISO 4217 code", httputil.ErrInvalidQueryString)
	errAmountInvalid          = fmt.Errorf("%w: the amount must be a decimal number", httputil.ErrInvalidQueryString)
	errFromToNotSet           = fmt.Errorf("%w: the from and to parameters must be set", httputil.ErrInvalidQueryString)
	errNoFile                 = fmt.Errorf("%w: you must send a file to this endpoint", httputil.ErrInvalidBody)
	errPeriodInvalid          = fmt.Errorf("%w: the period is not valid", httputil.ErrInvalidQueryString)
)
