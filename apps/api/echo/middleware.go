package echoapi

import (
	"github.com/labstack/echo/v4"
)

// adminMiddleware only lets token holders with the admin role through.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if !claims.IsAdmin {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// maintainerMiddleware lets maintainers and admins through.
func maintainerMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if !(claims.IsMaintainer || claims.IsAdmin) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
