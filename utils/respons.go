package utils

import (
	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status     bool        `json:"status"`
	Message    string      `json:"message"`
	Error      string      `json:"error,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalCount  int64 `json:"totalCount"`
	HasNext     bool  `json:"hasNext"`
	HasPrev     bool  `json:"hasPrev"`
}

// NewPagination derives page metadata from the requested page and the row count.
func NewPagination(page, limit int, total int64) *Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return &Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondPage(c *gin.Context, code int, message string, data interface{}, page *Pagination) {
	c.JSON(code, JSONResponse{
		Status:     code >= 200 && code < 300,
		Message:    message,
		Data:       data,
		Pagination: page,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondAppError writes err using the status of its kind. Internal details
// are logged and only exposed outside release mode.
func RespondAppError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	message := appErr.Message
	if appErr.Kind == KindInternal {
		ErrorLogger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		if gin.Mode() != gin.ReleaseMode && appErr.Err != nil {
			message = appErr.Error()
		}
	}
	c.JSON(appErr.Status(), JSONResponse{
		Status:  false,
		Message: message,
		Error:   string(appErr.Kind),
	})
}
