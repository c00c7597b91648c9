package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core/attendance"
	"github.com/smarttrack/backend/core/user"
)

type attendanceApi struct {
	opts *Options
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := attendanceApi{opts: opts}

	ag := g.Group("/attendance", jwt)
	ag.GET("/percentage", api.dailyPercentage)
	ag.GET("/students/:id", api.queryByStudent)
	ag.GET("/dates/:date", api.queryByDate, roleMiddleware(user.RolePrincipal, user.RoleTeacher))
	ag.POST("", api.mark, roleMiddleware(user.RoleTeacher))
}

// Handlers

func (api *attendanceApi) dailyPercentage(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	pct, err := api.opts.AttendanceSvc.DailyPercentage(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "computing daily percentage")
	}
	return ctx.JSON(http.StatusOK, PercentageResponse{Percentage: pct})
}

func (api *attendanceApi) queryByStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	records, err := api.opts.AttendanceSvc.ForStudent(claims.SchoolCode, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying attendance by student")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) queryByDate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	records, err := api.opts.AttendanceSvc.ForDate(claims.SchoolCode, ctx.Param("date"))
	if err != nil {
		return errors.Wrap(err, "querying attendance by date")
	}
	if records == nil {
		records = []attendance.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) mark(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data MarkAttendanceRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to MarkAttendanceRequest")
	}

	err = api.opts.AttendanceSvc.Mark(api.opts.Validate, claims.SchoolCode, claims.Subject, data.Entries)
	if err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

type (
	MarkAttendanceRequest struct {
		Entries []attendance.Entry `json:"entries"`
	}

	PercentageResponse struct {
		Percentage int `json:"percentage"`
	}
)
