package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/todo-list-api/internal/constants"
)

// ListParams holds the skip/limit windowing parameters
type ListParams struct {
	Skip  int
	Limit int
}

// GetListParams extracts and validates skip/limit from the request
func GetListParams(c *gin.Context) ListParams {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultListLimit)))

	if skip < 0 {
		skip = 0
	}
	if limit <= 0 || limit > constants.MaxListLimit {
		limit = constants.DefaultListLimit
	}

	return ListParams{
		Skip:  skip,
		Limit: limit,
	}
}
