package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core/user"
)

// profileGateMiddleware blocks learning features until the profile is
// complete. Completeness is checked against the stored profile, not the
// token claims, so completing the profile takes effect immediately.
func profileGateMiddleware(svc user.ServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx, svc)
			if err != nil {
				// a valid token for a deleted account is no longer authenticated
				if errors.Cause(err) == user.ErrNotFound {
					return errUnauthorized
				}
				// any other unloadable profile keeps the gate closed
				return errors.Wrap(err, "getting context user")
			}
			if usr.ProfileComplete() {
				return next(ctx)
			}
			return errProfileIncomplete
		}
	}
}
