package article

import (
	"net/http"

	"simple-cms/internal/handler/http/pathutil"
	"simple-cms/internal/handler/http/respond"
	artUC "simple-cms/internal/usecase/article"
)

type GetHandler struct{ Svc artUC.Service }

// ServeHTTP 記事取得
// @Summary      記事取得
// @Description  指定されたIDの記事を取得します
// @Tags         articles
// @Produce      json,xml
// @Param        id path int true "記事ID"
// @Success      200 {object} DTO "記事"
// @Failure      400 {string} string "Bad request - invalid article ID"
// @Failure      404 {string} string "Not found - article not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/articles/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	art, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	respond.Negotiate(w, r, http.StatusOK, toDTO(art))
}
