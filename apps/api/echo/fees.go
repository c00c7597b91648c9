package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core/fees"
	"github.com/smarttrack/backend/core/user"
)

type feesApi struct {
	opts *Options
}

func registerFeesAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := feesApi{opts: opts}

	fg := g.Group("/fees", jwt)
	fg.GET("", api.query, roleMiddleware(user.RolePrincipal, user.RoleTeacher))
	fg.GET("/students/:id", api.queryByStudent)
	fg.PUT("/status", api.updateStatus, roleMiddleware(user.RolePrincipal))
}

// Handlers

func (api *feesApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	payments, err := api.opts.FeeSvc.ForSchool(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "querying fee payments")
	}
	if payments == nil {
		payments = []fees.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *feesApi) queryByStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	payments, err := api.opts.FeeSvc.ForStudent(claims.SchoolCode, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying fee payments by student")
	}
	if payments == nil {
		payments = []fees.Payment{}
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *feesApi) updateStatus(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data UpdateFeeStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateFeeStatusRequest")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	payment, err := api.opts.FeeSvc.UpdateStatus(claims.SchoolCode, data.StudentID, data.DueDate, data.Status, data.PaidOn)
	if err != nil {
		return errors.Wrap(err, "updating fee status")
	}
	return ctx.JSON(http.StatusOK, payment)
}

type UpdateFeeStatusRequest struct {
	StudentID string      `json:"studentId" validate:"required"`
	DueDate   string      `json:"dueDate" validate:"required,isodate"`
	Status    fees.Status `json:"status" validate:"required,oneof=Paid Unpaid"`
	PaidOn    string      `json:"paidOn" validate:"omitempty,isodate"`
}

func (r *UpdateFeeStatusRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(r)
}
