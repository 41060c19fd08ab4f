package restapi

import (
	"github.com/labstack/echo/v4"

	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/restapi"
)

// apiMiddleware rejects every route that is neither public nor protected. Protected routes require a
// valid JWT, public routes accept one to identify the caller.
func apiMiddleware(auth *jwt.Auth, publicRoutes []string, protectedRoutes []string) (echo.MiddlewareFunc, error) {
	publicMatcher, err := restapi.NewRouteMatcher(publicRoutes)
	if err != nil {
		return nil, err
	}

	exposedMatcher, err := restapi.NewRouteMatcher(publicRoutes, protectedRoutes)
	if err != nil {
		return nil, err
	}

	publicSkipper := func(c echo.Context) bool {
		return publicMatcher.Match(c.Request().URL.Path)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		var jwtMiddlewareHandler echo.HandlerFunc
		if auth != nil {
			jwtMiddlewareHandler = auth.Middleware(publicSkipper, func(c echo.Context, claims *jwt.AuthClaims) bool {
				return exposedMatcher.Match(c.Request().URL.Path)
			})(next)
		}

		return func(c echo.Context) error {
			if !exposedMatcher.Match(c.Request().URL.Path) {
				return echo.ErrForbidden
			}

			if jwtMiddlewareHandler != nil {
				return jwtMiddlewareHandler(c)
			}

			if publicSkipper(c) {
				return next(c)
			}

			return echo.ErrUnauthorized
		}
	}, nil
}
