package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core/tutoring"
	"github.com/trezcool/minerva/core/user"
)

type tutoringApi struct {
	svc      tutoring.ServiceInterface
	userSvc  user.ServiceInterface
	validate *validator.Validate
}

func registerTutoringAPI(g *echo.Group, jwt, gate echo.MiddlewareFunc, deps ServerDeps) {
	api := tutoringApi{
		svc:      deps.TutoringSvc,
		userSvc:  deps.UserSvc,
		validate: deps.Validate,
	}

	tg := g.Group("/tutoring-sessions", jwt, gate)
	tg.GET("", api.query)
	tg.POST("", api.book)
}

func (api *tutoringApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	sessions, err := api.svc.QueryForUser(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying sessions")
	}
	if sessions == nil {
		sessions = []tutoring.Session{}
	}
	return ctx.JSON(http.StatusOK, sessions)
}

func (api *tutoringApi) book(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data tutoring.NewSession
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSession")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sess, err := api.svc.Book(ctx.Request().Context(), usr, data)
	if err != nil {
		return errors.Wrap(err, "booking session")
	}
	return ctx.JSON(http.StatusCreated, sess)
}
