package article

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"simple-cms/internal/handler/http/respond"
	artUC "simple-cms/internal/usecase/article"
)

var errBodyRequired = errors.New("request body is required")

type CreateHandler struct{ Svc artUC.Service }

// ServeHTTP 記事作成
// @Summary      記事作成
// @Description  新しい記事を作成します。timestamp はサーバー側で設定されます。
// @Tags         articles
// @Security     SuperToken
// @Accept       json
// @Produce      json,xml
// @Param        article body UpdateDTO true "記事情報"
// @Success      201 {object} DTO "作成された記事"
// @Header       201 {string} Location "作成された記事のURL"
// @Failure      400 {object} respond.Problem "Validation failed"
// @Failure      401 {string} string "Authentication required - missing or invalid SuperToken header"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/articles [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeUpdateDTO(w, r)
	if !ok {
		return
	}

	art, err := h.Svc.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/api/articles/%d", art.ID))
	respond.Negotiate(w, r, http.StatusCreated, toDTO(art))
}

// decodeUpdateDTO reads and validates a title/body document. It writes the
// error response itself and reports false when the request cannot proceed.
// Unknown fields such as a client-sent timestamp are ignored.
func decodeUpdateDTO(w http.ResponseWriter, r *http.Request) (UpdateDTO, bool) {
	var req UpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = errBodyRequired
		} else {
			err = fmt.Errorf("invalid JSON body: %w", err)
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return req, false
		}
		respond.SafeError(w, http.StatusBadRequest, err)
		return req, false
	}
	if err := validateDTO(req); err != nil {
		writeError(w, err)
		return req, false
	}
	return req, true
}
