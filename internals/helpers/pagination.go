// file: internals/helpers/pagination.go
package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Paging struct {
	Page     int
	PageSize int
	Offset   int
}

// ResolvePaging membaca ?page= & ?pageSize= (atau alias ?limit=) dan normalisasi.
// - defaultPageSize: fallback kalau tidak ada/invalid
// - maxPageSize: batasi pageSize maksimum (0 = tanpa batas)
func ResolvePaging(c *fiber.Ctx, defaultPageSize, maxPageSize int) Paging {
	pageStr := strings.TrimSpace(c.Query("page", "1"))

	sizeStr := strings.TrimSpace(c.Query("pageSize"))
	if sizeStr == "" {
		sizeStr = strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultPageSize)))
	}

	page, _ := strconv.Atoi(pageStr)
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(sizeStr)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if maxPageSize > 0 && pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return Paging{
		Page:     page,
		PageSize: pageSize,
		Offset:   (page - 1) * pageSize,
	}
}

// BuildListData membungkus hasil list ke bentuk {items, total, page, pageSize, totalPages}
func BuildListData(items interface{}, total int64, p Paging) fiber.Map {
	totalPages := int((total + int64(p.PageSize) - 1) / int64(p.PageSize))
	if totalPages == 0 {
		totalPages = 1
	}
	return fiber.Map{
		"items":      items,
		"total":      total,
		"page":       p.Page,
		"pageSize":   p.PageSize,
		"totalPages": totalPages,
	}
}
