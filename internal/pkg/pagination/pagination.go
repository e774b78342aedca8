package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultPage is the default page number (one-indexed)
const DefaultPage = 1

// DefaultSize is the default number of items per page
const DefaultSize = 10

// MaxSize is the maximum number of items per page
const MaxSize = 100

// Params represents pagination parameters
type Params struct {
	Page   int `json:"page"`
	Size   int `json:"size"`
	Offset int `json:"-"`
}

// GetParams extracts page/size query parameters from the request,
// applying defaults and bounds
func GetParams(c *fiber.Ctx) *Params {
	page, _ := strconv.Atoi(c.Query("page", strconv.Itoa(DefaultPage)))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(DefaultSize)))

	return New(page, size)
}

// New builds Params from raw page/size values, applying defaults and bounds
func New(page, size int) *Params {
	if page < 1 {
		page = DefaultPage
	}
	if size < 1 {
		size = DefaultSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	return &Params{
		Page:   page,
		Size:   size,
		Offset: (page - 1) * size,
	}
}

// Result represents one page of results
type Result struct {
	Results       interface{} `json:"results"`
	TotalElements int64       `json:"totalElements"`
	PageNumber    int         `json:"pageNumber"`
	PageSize      int         `json:"pageSize"`
}

// NewResult creates a paginated result
func NewResult(results interface{}, total int64, page, size int) *Result {
	return &Result{
		Results:       results,
		TotalElements: total,
		PageNumber:    page,
		PageSize:      size,
	}
}
