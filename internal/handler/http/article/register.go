package article

import (
	"net/http"

	"simple-cms/internal/common/pagination"
	artUC "simple-cms/internal/usecase/article"
)

// Register registers the article routes with the given mux.
// Authentication and the request logger are applied in front of the mux,
// not here.
func Register(mux *http.ServeMux, svc artUC.Service, paginationCfg pagination.Config) {
	mux.Handle("GET /api/articles", ListHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
	})
	mux.Handle("GET /api/articles/{id}", GetHandler{svc})

	mux.Handle("POST /api/articles", CreateHandler{svc})
	mux.Handle("PUT /api/articles/{id}", UpdateHandler{svc})
	mux.Handle("PATCH /api/articles/{id}", PatchHandler{svc})
	mux.Handle("DELETE /api/articles/{id}", DeleteHandler{svc})
}
