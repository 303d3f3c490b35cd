package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/minerva/core"
	"github.com/trezcool/minerva/core/course"
	"github.com/trezcool/minerva/core/dashboard"
	"github.com/trezcool/minerva/core/user"
)

type dashboardApi struct {
	store     *dashboard.Store
	courseSvc course.ServiceInterface
	userSvc   user.ServiceInterface
	validate  *validator.Validate
}

func registerDashboardAPI(g *echo.Group, jwt, gate echo.MiddlewareFunc, deps ServerDeps) {
	api := dashboardApi{
		store:     deps.DashStore,
		courseSvc: deps.CourseSvc,
		userSvc:   deps.UserSvc,
		validate:  deps.Validate,
	}

	dg := g.Group("/dashboard", jwt, gate)
	dg.GET("", api.retrieve)
	dg.POST("/navigate", api.navigate)
	dg.POST("/select-course", api.selectCourse)
	dg.POST("/back", api.back)
}

// retrieve returns the view that should render, not the raw stored state:
// course-details with no selected course resolves to the catalog.
func (api *dashboardApi) retrieve(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	return ctx.JSON(http.StatusOK, api.store.Get(usr.ID).Resolve())
}

func (api *dashboardApi) navigate(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data NavigateRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NavigateRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	view, err := api.store.Get(usr.ID).Navigate(data.View)
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "view", Error: err.Error()})
	}
	api.store.Set(usr.ID, view)
	return ctx.JSON(http.StatusOK, view.Resolve())
}

func (api *dashboardApi) selectCourse(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	var data SelectCourseRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SelectCourseRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	if _, err = api.courseSvc.GetByID(ctx.Request().Context(), data.CourseID); err != nil {
		if errors.Cause(err) == course.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding course by ID")
	}

	view := api.store.Get(usr.ID).SelectCourse(data.CourseID)
	api.store.Set(usr.ID, view)
	return ctx.JSON(http.StatusOK, view)
}

func (api *dashboardApi) back(ctx echo.Context) error {
	usr, err := getContextUser(ctx, api.userSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	view := api.store.Get(usr.ID).Back()
	api.store.Set(usr.ID, view)
	return ctx.JSON(http.StatusOK, view)
}

type (
	NavigateRequest struct {
		View dashboard.ViewName `json:"view" validate:"required"`
	}

	SelectCourseRequest struct {
		CourseID string `json:"course_id" validate:"required"`
	}
)
