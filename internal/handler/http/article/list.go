package article

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"simple-cms/internal/common/pagination"
	"simple-cms/internal/handler/http/requestid"
	"simple-cms/internal/handler/http/respond"
	"simple-cms/internal/observability/logging"
	artUC "simple-cms/internal/usecase/article"
)

// ListHandler logs through the logger stored by the Logging middleware.
type ListHandler struct {
	Svc           artUC.Service
	PaginationCfg pagination.Config
}

// ServeHTTP 記事一覧取得
// @Summary      記事一覧取得（ソート・オフセット・件数指定対応）
// @Description  記事を取得します。例: /api/articles?sort=timestamp desc,title&offset=0&limit=10
// @Description  sort はカンマ区切りのプロパティ名。降順にする場合はプロパティ名の後に " desc" を付けます。
// @Tags         articles
// @Produce      json,xml
// @Param        sort    query    string  false  "ソート条件 (id, title, body, timestamp)"
// @Param        offset  query    int     false  "スキップする件数" minimum(0)
// @Param        limit   query    int     false  "返す最大件数" minimum(0)
// @Success      200 {array} DTO "記事一覧"
// @Header       200 {integer} X-Total-Count "保存されている記事の総数"
// @Failure      400 {string} string "Invalid query parameters or sort parameter"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /api/articles [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		logger.Warn("Invalid pagination parameters", "error", err.Error())
		pagination.RecordError("validation")
		pagination.RecordRequest(http.StatusBadRequest, params)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	sort := r.URL.Query().Get("sort")
	pagination.LogRequest(logger, reqID, sort, params)

	articles, err := h.Svc.List(ctx, artUC.ListInput{
		Sort:   sort,
		Offset: params.Offset,
		Limit:  params.Limit,
	})
	if err != nil {
		errorType, code := "database", http.StatusInternalServerError
		if errors.Is(err, artUC.ErrInvalidSort) {
			errorType, code = "sort", http.StatusBadRequest
		}
		pagination.LogError(logger, reqID, params, err, errorType)
		pagination.RecordError(errorType)
		pagination.RecordRequest(code, params)
		writeError(w, err)
		return
	}

	if total, err := h.Svc.Count(ctx); err != nil {
		logger.Warn("Failed to count articles", "error", err.Error())
	} else {
		w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	}

	dtos := make([]DTO, 0, len(articles))
	for _, a := range articles {
		dtos = append(dtos, toDTO(a))
	}

	duration := time.Since(startTime)
	pagination.RecordRequest(http.StatusOK, params)
	pagination.RecordDuration("handler", duration.Seconds())
	pagination.RecordReturned(len(dtos))
	pagination.LogResponse(logger, reqID, params, len(dtos), duration, http.StatusOK)

	if respond.WantsXML(r) {
		respond.XML(w, http.StatusOK, ListDTO{Articles: dtos})
		return
	}
	respond.JSON(w, http.StatusOK, dtos)
}
