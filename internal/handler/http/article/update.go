package article

import (
	"net/http"

	"simple-cms/internal/handler/http/pathutil"
	"simple-cms/internal/handler/http/respond"
	artUC "simple-cms/internal/usecase/article"
)

type UpdateHandler struct{ Svc artUC.Service }

// ServeHTTP 記事更新
// @Summary      記事更新
// @Description  記事の title と body を置き換えます
// @Tags         articles
// @Security     SuperToken
// @Accept       json
// @Param        id path int true "記事ID"
// @Param        article body UpdateDTO true "更新内容"
// @Success      204 "No Content"
// @Failure      400 {object} respond.Problem "Validation failed"
// @Failure      401 {string} string "Authentication required - missing or invalid SuperToken header"
// @Failure      404 {string} string "Not found - article not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/articles/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	req, ok := decodeUpdateDTO(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Update(r.Context(), id, req.input()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
