package httpx

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrInvalidID - path-параметр не число или меньше 1.
var ErrInvalidID = errors.New("id must be a positive integer")

// Page - окно выборки списка.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage - limit/offset из query. Нечисловой limit → def, выход за [1, maxLimit] обрезается;
// нечисловой или отрицательный offset → 0.
func ParsePage(c *gin.Context, def, maxLimit int) Page {
	p := Page{Limit: clamp(def, 1, maxLimit)}
	if raw, ok := c.GetQuery("limit"); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			p.Limit = clamp(n, 1, maxLimit)
		}
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil && n > 0 {
		p.Offset = n
	}
	return p
}

// ParseID - положительный int64 из path-параметра.
func ParseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
