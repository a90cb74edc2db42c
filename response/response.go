package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-manager/errors"
)

// Response is the envelope of every JSON answer
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Kind       string      `json:"kind,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error writes a 400 with a custom message
func Error(c *gin.Context, code int, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: code,
		Mess: message,
	})
}

func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
		Kind: string(errors.ErrCodeDBError),
	})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Unauthorized",
		Kind: string(errors.ErrCodeUnauthorized),
	})
}

func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: "Forbidden",
	})
}

func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Not found",
		Kind: string(errors.ErrCodeNotFound),
	})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
		Kind: string(errors.ErrCodeValidation),
	})
}

// StatusFor maps an error kind to its HTTP status
func StatusFor(kind errors.ErrorCode) int {
	switch kind {
	case errors.ErrCodeValidation:
		return http.StatusBadRequest
	case errors.ErrCodeConflict:
		return http.StatusConflict
	case errors.ErrCodeInvalidTransition:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeGuardedDeletion:
		return http.StatusConflict
	case errors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err with the status of its kind. Errors that are not AppErrors
// are reported as a generic server error without leaking their text.
func FromError(c *gin.Context, err error) {
	kind := errors.Kind(err)
	status := StatusFor(kind)

	message := "Internal server error"
	if appErr := errors.GetAppError(err); appErr != nil && status != http.StatusInternalServerError {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		c.Error(err)
	}

	c.JSON(status, Response{
		Code: 0,
		Mess: message,
		Kind: string(kind),
	})
}
