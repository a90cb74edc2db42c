package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "hotel-manager/errors"
)

const maxPageSize = 100

// paginate slices items for a 1-based page; limit <= 0 returns everything
func paginate[T any](items []T, page, limit int) []T {
	if limit <= 0 {
		return items
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func mapWriteError(entity string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(fmt.Sprintf("%s already exists", entity), apperrors.ErrDuplicate)
	}
	return apperrors.DBError(fmt.Sprintf("failed to save %s", entity), err)
}
