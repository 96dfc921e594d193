package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osatria/portal/core/user"
)

type userApi struct {
	service user.ServiceInterface
}

func registerUserAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := userApi{service: opts.UserSvc}

	// public reads
	g.GET("/leaderboard", api.leaderboard)

	// authed
	ag := g.Group("", jwt)
	ag.GET("/me", api.me)
	ag.POST("/token/refresh", api.tokenRefresh)

	// admin
	adg := g.Group("/admin", jwt, adminMiddleware())
	adg.GET("/users", api.userQuery)
	adg.PUT("/users/:uid/role", api.userSetRole)
	adg.POST("/users/:uid/points", api.userAddPoints)
}

type TokenResponse struct {
	Token string `json:"token"`
}

// Handlers

// me upserts the caller's program record from the token's identity triple and
// returns it. First sight of a user happens here.
func (api *userApi) me(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	usr, err := api.service.EnsureUser(claims.Identity())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) tokenRefresh(ctx echo.Context) error {
	token, err := refreshToken(ctx, api.service)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, TokenResponse{Token: token})
}

func (api *userApi) leaderboard(ctx echo.Context) error {
	users, err := api.service.Leaderboard()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) userQuery(ctx echo.Context) error {
	users, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, users)
}

func (api *userApi) userSetRole(ctx echo.Context) error {
	data := new(user.UpdateUserRole)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	usr, err := api.service.SetRole(ctx.Param("uid"), data.Role)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *userApi) userAddPoints(ctx echo.Context) error {
	data := new(user.AddUserPoints)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	usr, err := api.service.AddPoints(ctx.Param("uid"), data.Delta)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, usr)
}
