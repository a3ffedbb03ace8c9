package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/domain/model/order"
	"epharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const internalErrorReason = "internal_error"

// Business reasons answered with something other than 400 Bad Request.
var reasonStatuses = map[string]int{
	commands.ErrUnauthorizedPharmacyAccess.Reason: http.StatusForbidden,
	commands.ErrOrderNotFound.Reason:              http.StatusNotFound,
	order.ErrInvalidTransition.Reason:             http.StatusConflict,
	order.ErrAlreadyFinalized.Reason:              http.StatusConflict,
}

// fail renders err. Business rule violations answer with their reason code,
// malformed input with its messages. Anything else is logged and hidden
// behind 500.
func (s *Server) fail(ctx echo.Context, err error) error {
	if reason, ok := errs.ReasonOf(err); ok {
		status, found := reasonStatuses[reason]
		if !found {
			status = http.StatusBadRequest
		}
		return ctx.JSON(status, Error{Errors: []string{reason}})
	}

	if isInputError(err) {
		return ctx.JSON(http.StatusBadRequest, Error{Errors: strings.Split(err.Error(), "\n")})
	}

	req := ctx.Request()
	s.logger.LogAttrs(req.Context(), slog.LevelError, "request failed",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("error", err.Error()),
	)
	return ctx.JSON(http.StatusInternalServerError, Error{Errors: []string{internalErrorReason}})
}

func isInputError(err error) bool {
	return errors.Is(err, errs.ErrValueIsRequired) ||
		errors.Is(err, errs.ErrValueIsInvalid) ||
		errors.Is(err, errs.ErrValueIsOutOfRange)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{Errors: []string{message}})
}
