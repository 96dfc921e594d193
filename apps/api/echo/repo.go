package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osatria/portal/core/repo"
)

type repoApi struct {
	service repo.ServiceInterface
}

func registerRepoAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := repoApi{service: opts.RepoSvc}

	// public reads: the catalogue is browsable without signing in
	g.GET("/repositories", api.repoQuery)

	// maintainers
	mg := g.Group("/maintainer", jwt, maintainerMiddleware())
	mg.GET("/repositories", api.maintainerRepoQuery)

	// admin
	adg := g.Group("/admin", jwt, adminMiddleware())
	adg.POST("/repositories", api.repoCreate)
	adg.GET("/repositories", api.repoQuery)
	adg.PUT("/repositories/:id", api.repoUpdate)
	adg.DELETE("/repositories/:id", api.repoDestroy)
	adg.PUT("/repositories/:id/maintainer", api.repoAssignMaintainer)
	adg.GET("/whitelist", api.whitelistQuery)
	adg.POST("/whitelist", api.whitelistAdd)
	adg.DELETE("/whitelist/:id", api.whitelistRemove)
}

// AssignMaintainerRequest binds the maintainer assignment payload. Either key
// may be empty; assignment by GitHub username alone covers maintainers who
// have never signed in.
type AssignMaintainerRequest struct {
	UID            string `json:"uid"`
	GithubUsername string `json:"githubUsername"`
}

// Handlers

func (api *repoApi) repoQuery(ctx echo.Context) error {
	repos, err := api.service.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, repos)
}

func (api *repoApi) maintainerRepoQuery(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	repos, err := api.service.QueryByMaintainer(claims.Subject, claims.GithubUsername)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, repos)
}

func (api *repoApi) repoCreate(ctx echo.Context) error {
	data := new(repo.NewRepository)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	rp, err := api.service.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, rp)
}

func (api *repoApi) repoUpdate(ctx echo.Context) error {
	data := new(repo.UpdateRepository)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(validate); err != nil {
		return err
	}

	rp, err := api.service.Update(ctx.Param("id"), *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rp)
}

func (api *repoApi) repoDestroy(ctx echo.Context) error {
	if err := api.service.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *repoApi) repoAssignMaintainer(ctx echo.Context) error {
	data := new(AssignMaintainerRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}

	rp, err := api.service.AssignMaintainer(ctx.Param("id"), data.UID, data.GithubUsername)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, rp)
}

func (api *repoApi) whitelistQuery(ctx echo.Context) error {
	entries, err := api.service.QueryWhitelist()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, entries)
}

func (api *repoApi) whitelistAdd(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	data := new(repo.NewWhitelistEntry)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	data.AddedBy = claims.Subject
	if err := data.Validate(validate); err != nil {
		return err
	}

	entry, err := api.service.Whitelist(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, entry)
}

func (api *repoApi) whitelistRemove(ctx echo.Context) error {
	if err := api.service.RemoveFromWhitelist(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}
