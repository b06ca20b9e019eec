package api

import (
	"errors"

	"StockLens/internal/domain/failure"
	"StockLens/internal/domain/models"
	xhttp "StockLens/pkg/http"
)

// toAppError maps a classified failure to its HTTP shape. The localized
// message travels unchanged; the stage is carried as a param.
func toAppError(err error) *xhttp.AppError {
	var fe *failure.Error
	if !errors.As(err, &fe) {
		return xhttp.InternalError(failure.MsgTransport).WithError(err)
	}

	var ae *xhttp.AppError
	switch fe.Kind {
	case failure.InvalidInput:
		ae = xhttp.BadRequestError(fe.Message)
		ae.Code = "ERR_INVALID_INPUT"
	case failure.AuthenticationFailure:
		ae = xhttp.UnauthorizedError(fe.Message)
		ae.Code = "ERR_AUTHENTICATION"
	case failure.QuotaExceeded:
		ae = xhttp.PaymentRequiredError("ERR_QUOTA_EXCEEDED", fe.Message)
	case failure.SymbolNotFound:
		ae = xhttp.NotFoundError(fe.Message)
		ae.Code = "ERR_SYMBOL_NOT_FOUND"
	case failure.LocalRateLimited:
		ae = xhttp.TooManyRequestsError(fe.Message)
		ae.Code = "ERR_LOCAL_RATE_LIMITED"
	case failure.MalformedAnalysis:
		ae = xhttp.BadGatewayError("ERR_MALFORMED_ANALYSIS", fe.Message)
	default:
		ae = xhttp.BadGatewayError("ERR_TRANSPORT", fe.Message)
	}
	if fe.Stage != "" {
		ae.WithParam("stage", fe.Stage)
	}
	return ae.WithError(err)
}

func streamError(err error) *models.StreamError {
	return &models.StreamError{
		Kind:    string(failure.KindOf(err)),
		Stage:   failure.StageOf(err),
		Message: messageOf(err),
	}
}

func messageOf(err error) string {
	var fe *failure.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	return failure.MsgTransport
}
