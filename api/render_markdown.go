package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Drolfothesgnir/stackmark/backend"
	"github.com/Drolfothesgnir/stackmark/cache"
	"github.com/Drolfothesgnir/stackmark/markdown"
	"github.com/Drolfothesgnir/stackmark/render"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// jsonOverheadBytes is the room left for the JSON envelope
// and string escaping on top of MaxInputBytes.
const jsonOverheadBytes = 4096

type renderRequest struct {
	Markdown   string `json:"markdown"`
	Backend    string `json:"backend" binding:"omitempty,md_backend"`
	Format     string `json:"format" binding:"omitempty,md_format"`
	Emoji      *bool  `json:"emoji"`
	HardBreaks bool   `json:"hard_breaks"`
}

type renderResponse struct {
	RequestID string                   `json:"request_id"`
	Backend   string                   `json:"backend"`
	Format    string                   `json:"format"`
	HTML      string                   `json:"html,omitempty"`
	Markdown  string                   `json:"markdown,omitempty"`
	Tree      *render.SerializableTree `json:"tree,omitempty"`
	Warnings  []markdown.Warning       `json:"warnings,omitempty"`
	Cached    bool                     `json:"cached"`
}

// renderOutput is a render result together with the problems the parser found.
type renderOutput struct {
	render.Result
	Warnings []markdown.Warning
}

func (service *Service) renderMarkdown(ctx *gin.Context) {
	start := time.Now()

	limit := int64(2*service.config.MaxInputBytes + jsonOverheadBytes)
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, limit)

	var req renderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrInputTooLarge))
			return
		}

		ctx.JSON(http.StatusBadRequest, NewErrorResponse(ErrInvalidParams, ExtractErrorFields(err)...))
		return
	}

	if len(req.Markdown) > service.config.MaxInputBytes {
		field := ErrorField{"markdown", fmt.Sprintf("must not exceed %d bytes", service.config.MaxInputBytes)}
		ctx.JSON(http.StatusRequestEntityTooLarge, NewErrorResponse(ErrInputTooLarge, field))
		return
	}

	backendName := req.Backend
	if backendName == "" {
		backendName = service.config.DefaultBackend
	}

	format := req.Format
	if format == "" {
		format = render.FormatHTML
	}

	opts := render.Options{
		Emoji:      service.config.EmojiEnabled,
		HardBreaks: req.HardBreaks,
	}
	if req.Emoji != nil {
		opts.Emoji = *req.Emoji
	}

	logger := log.With().
		Str("request_id", requestID(ctx)).
		Str("backend", backendName).
		Str("format", format).
		Int("input_bytes", len(req.Markdown)).
		Logger()

	key := cache.Key(backendName, format, opts.Emoji, opts.HardBreaks, req.Markdown)

	if out, ok := service.cachedRender(ctx.Request.Context(), key); ok {
		logger.Info().Bool("cache_hit", true).Dur("duration", time.Since(start)).Msg("markdown rendered")
		ctx.JSON(http.StatusOK, newRenderResponse(requestID(ctx), backendName, out, true))
		return
	}

	root, warnings, err := backend.ParseWithWarnings(backendName, req.Markdown)
	if err != nil {
		logger.Error().Err(err).Msg("cannot parse markdown")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrRenderFailed))
		return
	}

	result, err := render.Output(root, format, opts)
	if err != nil {
		logger.Error().Err(err).Msg("cannot render markdown")
		ctx.JSON(http.StatusInternalServerError, NewErrorResponse(ErrRenderFailed))
		return
	}

	out := renderOutput{Result: result, Warnings: warnings}
	service.saveRender(ctx.Request.Context(), key, out)

	logger.Info().
		Bool("cache_hit", false).
		Int("warnings", len(warnings)).
		Dur("duration", time.Since(start)).
		Msg("markdown rendered")
	ctx.JSON(http.StatusOK, newRenderResponse(requestID(ctx), backendName, out, false))
}

func newRenderResponse(id, backendName string, out renderOutput, cached bool) renderResponse {
	resp := renderResponse{
		RequestID: id,
		Backend:   backendName,
		Format:    out.Format,
		Tree:      out.Tree,
		Warnings:  out.Warnings,
		Cached:    cached,
	}

	switch out.Format {
	case render.FormatHTML:
		resp.HTML = out.Text
	case render.FormatMarkdown:
		resp.Markdown = out.Text
	}

	return resp
}

// cachedRender looks the key up in the render cache.
// Cache failures are logged and treated as a miss.
func (service *Service) cachedRender(ctx context.Context, key string) (renderOutput, bool) {
	if service.cache == nil || service.config.RenderCacheTTL <= 0 {
		return renderOutput{}, false
	}

	entry, err := service.cache.GetRender(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Warn().Err(err).Str("key", key).Msg("render cache lookup failed")
		}
		return renderOutput{}, false
	}

	return renderOutput{
		Result:   render.Result{Format: entry.Format, Text: entry.Output, Tree: entry.Tree},
		Warnings: entry.Warnings,
	}, true
}

// saveRender stores a render result. Failures are only logged.
func (service *Service) saveRender(ctx context.Context, key string, out renderOutput) {
	if service.cache == nil || service.config.RenderCacheTTL <= 0 {
		return
	}

	entry := cache.Entry{
		Format:    out.Format,
		Output:    out.Text,
		Tree:      out.Tree,
		Warnings:  out.Warnings,
		CreatedAt: time.Now().UTC(),
	}

	if err := service.cache.SaveRender(ctx, key, entry, service.config.RenderCacheTTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cannot save render result")
	}
}
