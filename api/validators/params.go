package validators

import (
	"net/http"
	"strings"

	pkgerrors "github.com/angelmondragon/greatkart/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const ProductIDParam = "productId"

var validate = validator.New()

// ProductID reads the product path parameter. A malformed id cannot name a
// catalog product, so it is reported as NOT_FOUND like a missing one.
func ProductID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, ProductIDParam))
	if err := validate.Var(raw, "required,uuid"); err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found").
			WithDetails(map[string]any{"field": ProductIDParam})
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	return id, nil
}

// SanitizeString trims input and caps it at maxLen bytes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}
