package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/osatria/portal/core/form"
	"github.com/osatria/portal/core/submission"
	exportsvc "github.com/osatria/portal/services/export"
)

type formApi struct {
	formSvc       form.ServiceInterface
	submissionSvc submission.ServiceInterface
}

func registerFormAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := formApi{formSvc: opts.FormSvc, submissionSvc: opts.SubmissionSvc}

	// public: the renderer fetches the schema before any sign-in
	g.GET("/forms/:slug", api.formRetrieve)

	// authed
	ag := g.Group("/forms", jwt)
	ag.POST("/:slug/submissions", api.submissionCreate)

	// admin
	adg := g.Group("/admin", jwt, adminMiddleware())
	adg.POST("/forms", api.formCreate)
	adg.GET("/forms", api.formQuery)
	adg.PUT("/forms/:slug", api.formUpdate)
	adg.DELETE("/forms/:slug", api.formDestroy)
	adg.GET("/forms/:slug/submissions", api.submissionQuery)
	adg.GET("/forms/:slug/export", api.submissionExport)
	adg.GET("/submissions", api.submissionQueryAll)
	adg.DELETE("/submissions/:id", api.submissionDestroy)
}

// FormDetailResponse is the render payload: the schema, plus whether the
// caller (when authenticated) has already submitted.
type FormDetailResponse struct {
	form.Form
	HasSubmitted *bool `json:"hasSubmitted,omitempty"`
}

// Handlers

func (api *formApi) formRetrieve(ctx echo.Context) error {
	frm, err := api.formSvc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return err
	}

	res := FormDetailResponse{Form: frm}
	if claims, ok := getOptionalClaims(ctx); ok {
		// a gate failure propagates; it must never read as "not submitted"
		submitted, err := api.submissionSvc.HasSubmitted(claims.Email, frm.Slug)
		if err != nil {
			return err
		}
		res.HasSubmitted = &submitted
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *formApi) submissionCreate(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}

	frm, err := api.formSvc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return err
	}

	submitted, err := api.submissionSvc.HasSubmitted(claims.Email, frm.Slug)
	if err != nil {
		return err
	}
	if submitted {
		return submission.ErrAlreadySubmitted
	}

	data := new(submission.NewSubmission)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	data.FormSlug = frm.Slug
	data.UserID = claims.Subject
	data.UserEmail = claims.Email
	data.UserName = claims.Name
	if err = data.Validate(validate); err != nil {
		return err
	}

	sub, err := api.submissionSvc.Submit(frm, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, sub)
}

func (api *formApi) formCreate(ctx echo.Context) error {
	data := new(form.NewForm)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := data.Validate(validate, translator, api.formSvc); err != nil {
		return err
	}

	frm, err := api.formSvc.Create(*data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, frm)
}

func (api *formApi) formQuery(ctx echo.Context) error {
	forms, err := api.formSvc.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, forms)
}

func (api *formApi) formUpdate(ctx echo.Context) error {
	frm, err := api.formSvc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return err
	}

	data := new(form.UpdateForm)
	if err = ctx.Bind(data); err != nil {
		return err
	}
	if err = data.Validate(validate, frm); err != nil {
		return err
	}

	frm, err = api.formSvc.Update(frm.Slug, *data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, frm)
}

func (api *formApi) formDestroy(ctx echo.Context) error {
	frm, err := api.formSvc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return err
	}

	// the store has no foreign keys: orphan the submissions first
	if err = api.submissionSvc.DeleteForForm(frm.Slug); err != nil {
		return err
	}
	if err = api.formSvc.Delete(frm.Slug); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *formApi) submissionQuery(ctx echo.Context) error {
	frm, err := api.formSvc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return err
	}
	subs, err := api.submissionSvc.QueryBySlug(frm.Slug)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *formApi) submissionQueryAll(ctx echo.Context) error {
	subs, err := api.submissionSvc.QueryAll()
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, subs)
}

func (api *formApi) submissionDestroy(ctx echo.Context) error {
	if err := api.submissionSvc.Delete(ctx.Param("id")); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *formApi) submissionExport(ctx echo.Context) error {
	format := ctx.QueryParam("format")
	if format == "" {
		format = exportsvc.FormatCSV
	}
	if format != exportsvc.FormatCSV && format != exportsvc.FormatXLSX {
		return echo.NewHTTPError(http.StatusBadRequest, exportsvc.ErrUnknownFormat.Error())
	}

	frm, err := api.formSvc.GetBySlug(ctx.Param("slug"))
	if err != nil {
		return err
	}
	subs, err := api.submissionSvc.QueryBySlug(frm.Slug)
	if err != nil {
		return err
	}

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, exportsvc.ContentType(format))
	res.Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", exportsvc.Filename(frm.Slug, format)))
	res.WriteHeader(http.StatusOK)
	return exportsvc.Export(res, format, frm, subs)
}
