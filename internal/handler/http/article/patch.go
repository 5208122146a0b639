package article

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	jsonpatch "github.com/evanphx/json-patch/v5"

	"simple-cms/internal/handler/http/pathutil"
	"simple-cms/internal/handler/http/respond"
	artUC "simple-cms/internal/usecase/article"
)

var errPatchRequired = errors.New("patch document is required")

type PatchHandler struct{ Svc artUC.Service }

// ServeHTTP 記事部分更新
// @Summary      記事部分更新
// @Description  RFC 6902 JSON Patch を記事の title/body に適用します。例: [{"op":"replace","path":"/title","value":"new"}]
// @Tags         articles
// @Security     SuperToken
// @Accept       json-patch+json,json
// @Param        id path int true "記事ID"
// @Param        patch body []object true "JSON Patch ドキュメント"
// @Success      204 "No Content"
// @Failure      400 {object} respond.Problem "Missing patch, invalid patch or validation failed"
// @Failure      401 {string} string "Authentication required - missing or invalid SuperToken header"
// @Failure      404 {string} string "Not found - article not found"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/articles/{id} [patch]
func (h PatchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(r.PathValue("id"))
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(w, http.StatusRequestEntityTooLarge, errors.New("request body too large"))
			return
		}
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		respond.Error(w, http.StatusBadRequest, errPatchRequired)
		return
	}

	patch, err := jsonpatch.DecodePatch(raw)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid patch document: %w", err))
		return
	}

	if err := h.Svc.Patch(r.Context(), id, applyPatch(patch)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyPatch runs the patch against the JSON form of UpdateDTO. The result
// may only carry UpdateDTO's fields and must pass its validation.
func applyPatch(patch jsonpatch.Patch) artUC.PatchFunc {
	return func(current artUC.Input) (artUC.Input, error) {
		doc, err := json.Marshal(fromInput(current))
		if err != nil {
			return artUC.Input{}, fmt.Errorf("marshal: %w", err)
		}
		patched, err := patch.Apply(doc)
		if err != nil {
			return artUC.Input{}, err
		}

		var dto UpdateDTO
		dec := json.NewDecoder(bytes.NewReader(patched))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&dto); err != nil {
			return artUC.Input{}, err
		}
		if err := validateDTO(dto); err != nil {
			return artUC.Input{}, err
		}
		return dto.input(), nil
	}
}
