package auth

import (
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "moviereview/internal/errors"
)

const identityContextKey = "identity"

// Middleware rejects requests without a valid "Authorization: Bearer <token>" header
// and stores the verified Identity on the echo context for IdentityFrom.
func Middleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  identityContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			identity, err := jwtService.VerifyToken(token)
			if err != nil {
				return nil, err
			}
			return identity, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			// Extraction failures never reach VerifyToken, so anything that is not
			// one of its errors means the header was absent or malformed.
			if !errors.Is(err, apperrors.ErrTokenExpired) && !errors.Is(err, apperrors.ErrTokenInvalid) {
				err = apperrors.ErrTokenMissing
			}
			httpErr := apperrors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	})
}

// IdentityFrom returns the identity verified by Middleware.
// It fails with errors.ErrTokenMissing on routes the middleware does not guard.
func IdentityFrom(c echo.Context) (Identity, error) {
	identity, ok := c.Get(identityContextKey).(Identity)
	if !ok {
		return Identity{}, apperrors.ErrTokenMissing
	}
	return identity, nil
}
