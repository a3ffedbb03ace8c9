package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// requestValidator checks parameters and JSON bodies against doc. Requests that
// match no documented operation pass through unchanged.
func requestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}

	options := &openapi3filter.Options{
		MultiError:         true,
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
				return next(ctx)
			}

			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return ctx.JSON(http.StatusBadRequest, Error{Errors: validationMessages(err)})
			}
			return next(ctx)
		}
	}, nil
}

func validationMessages(err error) []string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []string{firstLine(err.Error())}
	}

	messages := make([]string, 0, len(multi))
	for _, e := range multi {
		messages = append(messages, firstLine(e.Error()))
	}
	return messages
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}
