package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/gradnet/backend/core/message"
	"github.com/gradnet/backend/core/profile"
)

type messageApi struct {
	svc        *message.Service
	profileSvc *profile.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerMessageAPI(g *echo.Group, jwt echo.MiddlewareFunc, opts *Options) {
	api := messageApi{
		svc:        opts.MessageSvc,
		profileSvc: opts.ProfileSvc,
		validate:   opts.Validate,
		translator: opts.Translator,
	}

	ag := g.Group("", jwt)
	ag.GET("/messages", api.query)
	ag.GET("/conversations", api.conversations)
	ag.POST("/messages", api.send, newMessageRateLimiter())
	ag.PUT("/messages/:id/read", api.markRead)
}

// Handlers

func (api *messageApi) query(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	msgs, err := api.svc.QueryForUser(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "querying messages")
	}
	if msgs == nil {
		msgs = []message.Message{}
	}
	return ctx.JSON(http.StatusOK, msgs)
}

func (api *messageApi) conversations(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	convs, err := api.svc.Conversations(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "aggregating conversations")
	}
	if convs == nil {
		convs = []message.Conversation{}
	}
	return ctx.JSON(http.StatusOK, convs)
}

func (api *messageApi) send(ctx echo.Context) error {
	// a sender must have a profile; their name travels with the message
	sender, err := getContextProfile(ctx, api.profileSvc)
	if err != nil {
		if errors.Cause(err) == profile.ErrNotFound {
			return errHttpForbidden
		}
		return errors.Wrap(err, "getting context profile")
	}

	var data message.NewMessage
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewMessage")
	}
	if err := data.Validate(api.validate, api.translator); err != nil {
		return err
	}

	msg, err := api.svc.Send(ctx.Request().Context(), sender, data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, msg)
}

func (api *messageApi) markRead(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	if err := api.svc.MarkRead(ctx.Request().Context(), claims.Subject, ctx.Param("id")); err != nil {
		if errors.Cause(err) == message.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "marking message read")
	}
	return ctx.NoContent(http.StatusNoContent)
}
