package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	uploadsvc "github.com/osatria/portal/services/upload"
)

type uploadApi struct {
	service *uploadsvc.ImageKitService
}

func registerUploadAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := uploadApi{service: opts.UploadSvc}

	ag := g.Group("/uploads", jwt)
	ag.GET("/auth", api.uploadAuth)
	ag.GET("/config", api.uploadConfig)
}

// Handlers

// uploadAuth mints the signed parameters the upload widget hands to the
// upload host. Each call returns a fresh one-time token.
func (api *uploadApi) uploadAuth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.service.AuthParams())
}

func (api *uploadApi) uploadConfig(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.service.ClientConfig())
}
