package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core"
	"github.com/gradnet/backend/core/profile"
)

type profileApi struct {
	svc        *profile.Service
	storage    core.FileStorage
	validate   *validator.Validate
	translator ut.Translator
}

func registerProfileAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := profileApi{
		svc:        opts.ProfileSvc,
		storage:    opts.Storage,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	ag := g.Group("", jwt)
	ag.GET("/directory", api.directory)
	ag.GET("/profiles/:id", api.retrieve)

	pg := ag.Group("/profile")
	pg.GET("", api.retrieveOwn)
	pg.PUT("", api.upsertOwn)
	pg.POST("/picture", api.uploadPicture)
}

type DirectoryResponse struct {
	Profiles []profile.Profile `json:"profiles"`
	Years    []int             `json:"graduation_years"`
	Total    int               `json:"total"`
}

// Handlers

func (api *profileApi) directory(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	filter := new(profile.DirectoryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to DirectoryFilter")
	}
	filter.Clean()

	profiles, years, total, err := api.svc.Directory(ctx.Request().Context(), claims.Subject, *filter)
	if err != nil {
		return errors.Wrap(err, "querying directory")
	}
	if profiles == nil {
		profiles = []profile.Profile{}
	}
	if years == nil {
		years = []int{}
	}
	return ctx.JSON(http.StatusOK, DirectoryResponse{Profiles: profiles, Years: years, Total: total})
}

func (api *profileApi) retrieve(ctx echo.Context) error {
	p, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding profile by ID")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) retrieveOwn(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.svc)
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting context profile")
	}
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) upsertOwn(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data profile.UpsertProfile
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpsertProfile")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	p, err := api.svc.Upsert(ctx.Request().Context(), claims.Subject, claims.Email, data)
	if err != nil {
		return errors.Wrap(err, "upserting profile")
	}
	ctx.Set(contextProfileKey, p)
	return ctx.JSON(http.StatusOK, p)
}

func (api *profileApi) uploadPicture(ctx echo.Context) error {
	p, err := getContextProfile(ctx, api.svc)
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting context profile")
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return core.NewValidationError(nil, core.FieldError{Field: "file", Error: "this field is required"})
	}
	src, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer src.Close()

	url, err := api.storage.Save(fh.Filename, src)
	if err != nil {
		return errors.Wrap(err, "saving picture")
	}
	if err := api.svc.SetPicture(ctx.Request().Context(), p.ID, url); err != nil {
		return errors.Wrap(err, "setting profile picture")
	}

	p.PictureURL = url
	ctx.Set(contextProfileKey, p)
	return ctx.JSON(http.StatusOK, p)
}
