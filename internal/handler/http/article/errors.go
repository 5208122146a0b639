package article

import (
	"errors"
	"net/http"

	"simple-cms/internal/domain/entity"
	"simple-cms/internal/handler/http/respond"
	"simple-cms/internal/resilience/circuitbreaker"
	artUC "simple-cms/internal/usecase/article"
)

var errNotFound = errors.New("article not found")

// writeError maps use-case errors onto HTTP responses. Anything unrecognised
// is a 500 with a generic body.
func writeError(w http.ResponseWriter, err error) {
	var verrs entity.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		respond.ValidationProblem(w, verrs.Fields())
	case errors.Is(err, artUC.ErrArticleNotFound),
		errors.Is(err, artUC.ErrInvalidArticleID),
		errors.Is(err, entity.ErrNotFound):
		respond.Error(w, http.StatusNotFound, errNotFound)
	case errors.Is(err, artUC.ErrInvalidSort):
		respond.SafeErrorV2(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, artUC.ErrInvalidSort.Error(), err))
	case errors.Is(err, artUC.ErrInvalidPatch):
		respond.ValidationProblem(w, map[string][]string{"patch": {err.Error()}})
	case errors.Is(err, circuitbreaker.ErrUnavailable):
		respond.SafeErrorV2(w, http.StatusServiceUnavailable,
			respond.NewAppError(http.StatusServiceUnavailable, "service unavailable", err))
	default:
		respond.SafeError(w, http.StatusInternalServerError, err)
	}
}
