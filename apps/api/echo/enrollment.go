package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core/course"
	"github.com/trezcool/minerva/core/enrollment"
	"github.com/trezcool/minerva/core/user"
)

type enrollmentApi struct {
	svc       enrollment.ServiceInterface
	courseSvc course.ServiceInterface
	userSvc   user.ServiceInterface
}

func registerEnrollmentAPI(g *echo.Group, jwt, gate echo.MiddlewareFunc, deps ServerDeps) {
	api := enrollmentApi{
		svc:       deps.EnrollmentSvc,
		courseSvc: deps.CourseSvc,
		userSvc:   deps.UserSvc,
	}

	cg := g.Group("/courses/:id", jwt, gate)
	cg.POST("/enroll", api.enroll)
	cg.GET("/enrollment", api.status)

	eg := g.Group("/enrollments", jwt, gate)
	eg.GET("", api.query)
	eg.GET("/stats", api.stats)
}

func (api *enrollmentApi) enroll(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	if _, err = api.courseSvc.GetByID(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}

	enr, err := api.svc.Enroll(ctx.Request().Context(), usr.ID, ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, enr)
}

func (api *enrollmentApi) status(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	status, err := api.svc.GetStatus(ctx.Request().Context(), usr.ID, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "getting enrollment status")
	}
	return ctx.JSON(http.StatusOK, status)
}

func (api *enrollmentApi) query(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	enrollments, err := api.svc.QueryByUser(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "querying enrollments")
	}
	if enrollments == nil {
		enrollments = []enrollment.EnrollmentWithCourse{}
	}
	return ctx.JSON(http.StatusOK, enrollments)
}

func (api *enrollmentApi) stats(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	stats, err := api.svc.StatsByUser(ctx.Request().Context(), usr.ID)
	if err != nil {
		return errors.Wrap(err, "deriving enrollment stats")
	}
	return ctx.JSON(http.StatusOK, stats)
}
