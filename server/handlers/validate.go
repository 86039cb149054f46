// Package handlers provides the HTTP handlers of the dataquery service.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/tazeverywhere/dataquery/pkg/config"
	"github.com/tazeverywhere/dataquery/pkg/i18n"
	"github.com/tazeverywhere/dataquery/pkg/validate"
	"github.com/tazeverywhere/dataquery/server/apierror"
	"github.com/tazeverywhere/dataquery/server/render"
	"github.com/tazeverywhere/dataquery/server/types"
)

// maxBodyBytes caps POST bodies; a DSL query is a single statement.
const maxBodyBytes = 1 << 20

// ValidateHandler answers validation requests from the query editor.
type ValidateHandler struct {
	compiler validate.Compiler
	executor validate.Executor
	bundle   *i18n.Bundle
	logger   *slog.Logger
}

// NewValidateHandler creates a new validate handler.
func NewValidateHandler(compiler validate.Compiler, executor validate.Executor, bundle *i18n.Bundle, logger *slog.Logger) *ValidateHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ValidateHandler{
		compiler: compiler,
		executor: executor,
		bundle:   bundle,
		logger:   logger,
	}
}

// Validate handles GET and POST requests carrying the query parameter. The
// parameter is read from the request body first and from the URL otherwise; a
// missing parameter is validated as the empty query.
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get(config.FormatParam)
	if format == "" {
		format = config.FormatJSON
	}
	if format != config.FormatJSON && format != config.FormatHTML {
		apierror.Write(w, apierror.NewInvalidParameterError(config.FormatParam, "must be json or html"))
		return
	}

	raw, apiErr := queryParameter(w, r)
	if apiErr != nil {
		apierror.Write(w, apiErr)
		return
	}

	ctx := r.Context()
	logger := h.logger.With("request_id", middleware.GetReqID(ctx))
	catalog := h.bundle.Match(r.Header.Get("Accept-Language"))

	v := validate.New(h.compiler, h.executor, catalog, validate.WithLogger(logger))
	report := v.Validate(ctx, raw)

	logger.InfoContext(ctx, "query validated",
		"severity", report.MaxSeverity().String(),
		"language", catalog.Language().String(),
		"diagnostics", len(report.Diagnostics))

	var err error
	if format == config.FormatHTML {
		err = render.HTML(w, report)
	} else {
		err = render.JSON(w, report)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to write report", "error", err)
	}
}

// queryParameter extracts the raw query from a JSON body, a form body or the URL.
func queryParameter(w http.ResponseWriter, r *http.Request) (string, *apierror.APIError) {
	if r.Method != http.MethodPost || r.Body == nil {
		return r.URL.Query().Get(config.QueryParameter), nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var req types.ValidateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return "", apierror.WrapError(apierror.CodeInvalidParameter, "Invalid request body", err)
		}
		if req.Query != "" {
			return req.Query, nil
		}
	case "application/x-www-form-urlencoded", "multipart/form-data", "":
		if err := parseForm(r, mediaType); err != nil {
			return "", apierror.WrapError(apierror.CodeInvalidParameter, "Invalid form body", err)
		}
		if r.PostForm.Has(config.QueryParameter) {
			return r.PostForm.Get(config.QueryParameter), nil
		}
	default:
		return "", apierror.New(apierror.CodeUnsupportedMedia, "Unsupported content type "+mediaType)
	}

	return r.URL.Query().Get(config.QueryParameter), nil
}

func parseForm(r *http.Request, mediaType string) error {
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(maxBodyBytes)
	}
	return r.ParseForm()
}

// Health reports liveness.
func Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// RateLimited is the rejection handler of the rate limit middleware.
func RateLimited(w http.ResponseWriter, _ *http.Request) {
	apierror.Write(w, apierror.NewRateLimitedError())
}
