package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core/notification"
)

type notificationApi struct {
	opts *Options
}

func registerNotificationAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := notificationApi{opts: opts}

	ng := g.Group("/notifications", jwt)
	ng.GET("", api.query)
	ng.POST("/generate", api.generate)
	ng.PUT("/:id/read", api.markRead)
}

// Handlers

func (api *notificationApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	notifs, err := api.opts.NotificationSvc.ForUser(claims.SchoolCode, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying notifications")
	}
	if notifs == nil {
		notifs = []notification.AppNotification{}
	}
	return ctx.JSON(http.StatusOK, notifs)
}

func (api *notificationApi) generate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data GenerateNotificationRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to GenerateNotificationRequest")
	}

	usr, err := api.opts.UserSvc.Get(claims.SchoolCode, claims.Role, claims.Subject)
	if err != nil {
		return errors.Wrap(err, "finding user by ID")
	}

	gen, err := api.opts.NotificationSvc.Notify(ctx.Request().Context(), usr, data.Announcements)
	if err != nil {
		return errors.Wrap(err, "generating notification")
	}
	return ctx.JSON(http.StatusOK, gen)
}

func (api *notificationApi) markRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	notif, err := api.opts.NotificationSvc.MarkRead(claims.SchoolCode, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "marking notification read")
	}
	return ctx.JSON(http.StatusOK, notif)
}

type GenerateNotificationRequest struct {
	Announcements []string `json:"announcements"`
}
