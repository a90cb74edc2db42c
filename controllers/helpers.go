package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-manager/errors"
)

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewAppError(errors.ErrCodeInvalidFormat, fmt.Sprintf("%s must be a positive integer", name), err)
	}
	return uint(id), nil
}

func bindError(err error) error {
	return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid request body", err)
}

func queryError(err error) error {
	return errors.NewAppError(errors.ErrCodeInvalidFormat, "invalid query parameters", err)
}
