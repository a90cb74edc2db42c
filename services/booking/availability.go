package booking

import (
	"context"
	"fmt"
	"time"

	apperrors "hotel-manager/errors"
	"hotel-manager/models"
)

// Overlaps tests two half-open intervals [aIn, aOut) and [bIn, bOut)
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// calendarDates drops the time of day; stays are booked by calendar date
func calendarDates(checkIn, checkOut time.Time) (time.Time, time.Time) {
	return models.DateOnly(checkIn), models.DateOnly(checkOut)
}

func validateRange(checkIn, checkOut time.Time) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return apperrors.Validation("check-in and check-out dates are required", nil)
	}
	if !checkOut.After(checkIn) {
		return apperrors.Validation("check-out must be after check-in", apperrors.ErrInvalidDateRange)
	}
	return nil
}

// conflicts returns the active reservations of roomID that overlap [checkIn, checkOut)
func conflicts(ctx context.Context, repo Repository, roomID uint, checkIn, checkOut time.Time, excludeID uint) ([]models.Reservation, error) {
	existing, err := repo.FindActiveByRoom(ctx, roomID, excludeID)
	if err != nil {
		return nil, err
	}

	var out []models.Reservation
	for _, r := range existing {
		if r.ID == excludeID && excludeID != 0 {
			continue
		}
		if !r.Status.IsActive() {
			continue
		}
		if Overlaps(checkIn, checkOut, r.CheckIn, r.CheckOut) {
			out = append(out, r)
		}
	}
	return out, nil
}

func ensureAvailable(ctx context.Context, repo Repository, room *models.Room, checkIn, checkOut time.Time, excludeID uint) error {
	found, err := conflicts(ctx, repo, room.ID, checkIn, checkOut, excludeID)
	if err != nil {
		return err
	}
	if len(found) > 0 {
		first := found[0]
		return apperrors.Conflict(
			fmt.Sprintf("room %s is already booked from %s to %s",
				room.Number, first.CheckIn.Format("2006-01-02"), first.CheckOut.Format("2006-01-02")),
			apperrors.ErrRoomUnavailable,
		)
	}
	return nil
}

// IsAvailable reports whether roomID has no active reservation overlapping [checkIn, checkOut).
// excludeID, when non-zero, is ignored so a reservation can be re-checked against the others.
func (e *Engine) IsAvailable(ctx context.Context, roomID uint, checkIn, checkOut time.Time, excludeID uint) (bool, error) {
	checkIn, checkOut = calendarDates(checkIn, checkOut)
	if err := validateRange(checkIn, checkOut); err != nil {
		return false, err
	}
	found, err := conflicts(ctx, e.repo, roomID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return len(found) == 0, nil
}
