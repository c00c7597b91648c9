package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/leave"
	"github.com/smarttrack/backend/core/user"
)

type leaveApi struct {
	opts *Options
}

func registerLeaveAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := leaveApi{opts: opts}

	lg := g.Group("/leaves", jwt)
	lg.GET("", api.query, roleMiddleware(user.RolePrincipal))
	lg.GET("/students/:id", api.queryByStudent)
	lg.GET("/classes/:class", api.queryByClass, roleMiddleware(user.RoleTeacher))
	lg.POST("", api.create, roleMiddleware(user.RoleStudent, user.RoleParent))
	lg.PUT("/:id/status", api.updateStatus, roleMiddleware(user.RolePrincipal, user.RoleTeacher))
}

// Handlers

func (api *leaveApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	requests, err := api.opts.LeaveSvc.ForSchool(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "querying leave requests")
	}
	if requests == nil {
		requests = []leave.Request{}
	}
	return ctx.JSON(http.StatusOK, requests)
}

func (api *leaveApi) queryByStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	requests, err := api.opts.LeaveSvc.ForStudent(claims.SchoolCode, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying leave requests by student")
	}
	if requests == nil {
		requests = []leave.Request{}
	}
	return ctx.JSON(http.StatusOK, requests)
}

func (api *leaveApi) queryByClass(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	requests, err := api.opts.LeaveSvc.ForClass(claims.SchoolCode, ctx.Param("class"))
	if err != nil {
		return errors.Wrap(err, "querying leave requests by class")
	}
	if requests == nil {
		requests = []leave.Request{}
	}
	return ctx.JSON(http.StatusOK, requests)
}

func (api *leaveApi) create(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data leave.NewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRequest")
	}
	// students can only file for themselves
	if claims.Role == user.RoleStudent {
		data.StudentID = claims.Subject
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}
	// parents can only file for their own children
	if claims.Role == user.RoleParent {
		parent, err := api.opts.UserSvc.Get(claims.SchoolCode, user.RoleParent, claims.Subject)
		if err != nil {
			return errors.Wrap(err, "fetching parent")
		}
		if !parent.HasChild(data.StudentID) {
			return errHttpForbidden
		}
	}

	req, err := api.opts.LeaveSvc.Add(claims.SchoolCode, data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.NewValidationError(nil, core.FieldError{Field: "studentId", Error: user.ErrNotFound.Error()})
		}
		return errors.Wrap(err, "adding leave request")
	}
	return ctx.JSON(http.StatusCreated, req)
}

func (api *leaveApi) updateStatus(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data UpdateLeaveStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateLeaveStatusRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	req, err := api.opts.LeaveSvc.UpdateStatus(claims.SchoolCode, ctx.Param("id"), data.Status)
	if err != nil {
		return errors.Wrap(err, "updating leave status")
	}
	return ctx.JSON(http.StatusOK, req)
}

type UpdateLeaveStatusRequest struct {
	Status leave.Status `json:"status" validate:"required,oneof=Approved Rejected"`
}

func (r *UpdateLeaveStatusRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
