package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents the optional offset/limit window of a list request.
// A nil field means the client did not send it; the two are applied independently.
type Params struct {
	Offset *int
	Limit  *int
}

// ParseQueryParams parses offset and limit from the request query string.
//
// Query parameters:
//   - offset: number of items to skip (non-negative integer)
//   - limit: maximum number of items to return (non-negative integer, at most config.MaxLimit when set)
//
// Returns an error if a present parameter is malformed or out of range.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	var params Params
	q := r.URL.Query()

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return Params{}, fmt.Errorf("invalid query parameter: offset must be a non-negative integer")
		}
		params.Offset = &offset
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return Params{}, fmt.Errorf("invalid query parameter: limit must be a non-negative integer")
		}
		params.Limit = &limit
	}

	if err := params.Validate(config); err != nil {
		return Params{}, fmt.Errorf("invalid query parameter: %w", err)
	}
	return params, nil
}
