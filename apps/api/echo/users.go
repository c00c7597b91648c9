package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/smarttrack/backend/core"
	"github.com/smarttrack/backend/core/user"
)

type userApi struct {
	opts *Options
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := userApi{opts: opts}

	ug := g.Group("/users")

	// un-authed endpoints
	ug.POST("/login", api.login)

	// authed endpoints
	ag := g.Group("", jwt)

	sg := ag.Group("/students")
	sg.GET("", api.queryStudents)
	sg.GET("/:id", api.retrieveStudent)
	sg.POST("", api.createStudent, roleMiddleware(user.RolePrincipal))
	sg.PUT("/:id", api.updateStudent, roleMiddleware(user.RolePrincipal))
	sg.DELETE("/:id", api.destroyStudent, roleMiddleware(user.RolePrincipal))

	tg := ag.Group("/teachers")
	tg.GET("", api.queryTeachers)
	tg.POST("", api.createTeacher, roleMiddleware(user.RolePrincipal))
	tg.PUT("/:id", api.updateTeacher, roleMiddleware(user.RolePrincipal))
	tg.DELETE("/:id", api.destroyTeacher, roleMiddleware(user.RolePrincipal))

	ag.GET("/parents", api.queryParents, roleMiddleware(user.RolePrincipal))
}

// Handlers

func (api *userApi) login(ctx echo.Context) error {
	var data user.Credentials
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Credentials")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	usr, err := api.opts.UserSvc.Login(data)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return core.NewValidationError(errors.New("invalid credentials"))
		}
		return errors.Wrap(err, "authenticating")
	}
	token, err := GenerateToken(api.opts.Conf, GetUserClaims(api.opts.Conf, usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr.Public()})
}

func (api *userApi) queryStudents(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	students, err := api.opts.UserSvc.Students(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, publicUsers(students))
}

func (api *userApi) retrieveStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	usr, err := api.opts.UserSvc.StudentByID(claims.SchoolCode, ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "finding student by ID")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *userApi) createStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	usr, err := api.opts.UserSvc.CreateStudent(claims.SchoolCode, data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, usr.Public())
}

func (api *userApi) updateStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.UpdateStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	usr, err := api.opts.UserSvc.UpdateStudent(claims.SchoolCode, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *userApi) destroyStudent(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.opts.UserSvc.DeleteStudent(claims.SchoolCode, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) queryTeachers(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	teachers, err := api.opts.UserSvc.Teachers(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, publicUsers(teachers))
}

func (api *userApi) createTeacher(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.NewTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacher")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	usr, err := api.opts.UserSvc.CreateTeacher(claims.SchoolCode, data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, usr.Public())
}

func (api *userApi) updateTeacher(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	var data user.UpdateTeacher
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacher")
	}
	if err := data.Validate(api.opts.Validate); err != nil {
		return err
	}

	usr, err := api.opts.UserSvc.UpdateTeacher(claims.SchoolCode, ctx.Param("id"), data)
	if err != nil {
		return errors.Wrap(err, "updating teacher")
	}
	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *userApi) destroyTeacher(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	if err := api.opts.UserSvc.DeleteTeacher(claims.SchoolCode, ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting teacher")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *userApi) queryParents(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	parents, err := api.opts.UserSvc.Parents(claims.SchoolCode)
	if err != nil {
		return errors.Wrap(err, "querying parents")
	}
	return ctx.JSON(http.StatusOK, publicUsers(parents))
}

func publicUsers(users []user.User) []user.User {
	out := make([]user.User, len(users))
	for i, usr := range users {
		out[i] = usr.Public()
	}
	return out
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}
