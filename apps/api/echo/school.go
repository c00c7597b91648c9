package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core/school"
)

type schoolApi struct {
	opts *Options
}

func registerSchoolAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := schoolApi{opts: opts}

	sg := g.Group("/schools")

	// un-authed endpoints
	sg.POST("/register", api.register)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.GET("/me", api.retrieve)
}

// Handlers

func (api *schoolApi) register(ctx echo.Context) error {
	var data school.Registration
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Registration")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	sch, err := api.opts.SchoolSvc.Register(data)
	if err != nil {
		return errors.Wrap(err, "registering school")
	}

	return ctx.JSON(http.StatusCreated, sch)
}

func (api *schoolApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	sch, err := api.opts.SchoolSvc.GetByCode(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "finding school by code")
	}
	return ctx.JSON(http.StatusOK, sch)
}
