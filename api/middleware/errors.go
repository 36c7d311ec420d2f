package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/angelmondragon/greatkart/api/responses"
	"github.com/angelmondragon/greatkart/pkg/logger"
)

const apiPrefix = "/api/"

// writeError answers in the shape the caller expects: the JSON envelope under
// /api/ and a plain-text page elsewhere.
func writeError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if strings.HasPrefix(r.URL.Path, apiPrefix) {
		responses.WriteError(ctx, logg, w, err)
		return
	}
	responses.WriteHTMLError(ctx, logg, w, err)
}
