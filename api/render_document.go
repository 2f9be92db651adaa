package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/content"
	"github.com/Drolfothesgnir/stackmark/render"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type documentQuery struct {
	Backend    string `form:"backend" binding:"omitempty,md_backend"`
	Emoji      *bool  `form:"emoji"`
	HardBreaks bool   `form:"hard_breaks"`
}

func (service *Service) renderDocument(ctx *gin.Context) {
	start := time.Now()

	var query documentQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(ctx.Writer, ctx.Request.Body, int64(service.config.MaxInputBytes)))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrInputTooLarge))
			return
		}
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	backendName := query.Backend
	if backendName == "" {
		backendName = service.config.DefaultBackend
	}

	parse, err := backend.Get(backendName)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return
	}

	opts := render.Options{
		Emoji:      service.config.EmojiEnabled,
		HardBreaks: query.HardBreaks,
	}
	if query.Emoji != nil {
		opts.Emoji = *query.Emoji
	}

	doc := content.NewDocument()
	if _, err := doc.Parse(body); err != nil {
		field := ErrorField{"document", err.Error()}
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidDocument, field))
		return
	}

	out, err := doc.Render(parse, opts)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestID(ctx)).Msg("cannot render document")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrRenderFailed))
		return
	}

	log.Info().
		Str("request_id", requestID(ctx)).
		Str("backend", backendName).
		Int("input_bytes", len(body)).
		Int("sections", len(out.Sections)).
		Dur("duration", time.Since(start)).
		Msg("document rendered")

	ctx.JSON(http.StatusOK, out)
}
