package http

import (
	"net/http"
	"strings"

	"epharmacy/internal/core/application/usecases/commands"
	"epharmacy/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Headers set by the authentication gateway in front of the service.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"

	adminRole   = "Admin"
	identityKey = "identity"
)

// identity rejects requests without a valid X-User-Id and stores the caller
// for the handlers.
func identity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		userID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderUserID))
		if err == nil {
			err = userID.Validate()
		}
		if err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{Errors: []string{"unauthenticated"}})
		}

		ctx.Set(identityKey, commands.Requester{
			UserID:  userID,
			IsAdmin: strings.EqualFold(ctx.Request().Header.Get(HeaderUserRole), adminRole),
		})
		return next(ctx)
	}
}

func requesterOf(ctx echo.Context) commands.Requester {
	requester, _ := ctx.Get(identityKey).(commands.Requester)
	return requester
}
