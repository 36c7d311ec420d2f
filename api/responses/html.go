package responses

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/angelmondragon/greatkart/pkg/logger"
)

// Renderer executes a named template.
type Renderer interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

// WriteHTML renders name into a buffer first so a template failure still
// produces a clean 500 instead of a half-written page.
func WriteHTML(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, renderer Renderer, name string, data any) {
	var buf bytes.Buffer
	if err := renderer.ExecuteTemplate(&buf, name, data); err != nil {
		WriteHTMLError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render "+name))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// WriteHTMLError answers a page request with a plain-text error body.
func WriteHTMLError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed, meta := resolve(err)
	logError(ctx, logg, err, meta)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(meta.HTTPStatus)
	_, _ = fmt.Fprintf(w, "%d %s: %s\n", meta.HTTPStatus, http.StatusText(meta.HTTPStatus), publicMessage(typed, meta))
}

// Redirect sends the browser to target with a 302.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusFound)
}
