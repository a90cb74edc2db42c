package models

import (
	"fmt"
	"time"

	apperrors "hotel-manager/errors"
)

// ReservationState defines what each status allows
type ReservationState interface {
	Confirm(r *Reservation) error
	Cancel(r *Reservation) error
	CheckIn(r *Reservation, today time.Time) error
	CheckOut(r *Reservation) error
	// Edit reports whether room, client or dates may still change
	Edit(r *Reservation) error
	Delete(r *Reservation) error
}

// DateOnly strips the time of day, keeping the calendar date as seen in t's location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// PendingState: created, waiting for confirmation
type PendingState struct{}

func (s *PendingState) Confirm(r *Reservation) error {
	r.Status = ReservationStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(r *Reservation) error {
	r.Status = ReservationStatusCancelled
	return nil
}

func (s *PendingState) CheckIn(r *Reservation, today time.Time) error {
	return apperrors.InvalidTransition("only confirmed reservations can check in")
}

func (s *PendingState) CheckOut(r *Reservation) error {
	return apperrors.InvalidTransition("only checked-in reservations can check out")
}

func (s *PendingState) Edit(r *Reservation) error   { return nil }
func (s *PendingState) Delete(r *Reservation) error { return nil }

// ConfirmedState: confirmed, guest not arrived yet
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(r *Reservation) error {
	return apperrors.InvalidTransition("reservation already confirmed")
}

func (s *ConfirmedState) Cancel(r *Reservation) error {
	r.Status = ReservationStatusCancelled
	return nil
}

func (s *ConfirmedState) CheckIn(r *Reservation, today time.Time) error {
	if DateOnly(r.CheckIn.UTC()).After(DateOnly(today)) {
		return apperrors.InvalidTransition(fmt.Sprintf("check-in is only allowed from %s", r.CheckIn.UTC().Format("2006-01-02")))
	}
	r.Status = ReservationStatusCheckIn
	return nil
}

func (s *ConfirmedState) CheckOut(r *Reservation) error {
	return apperrors.InvalidTransition("only checked-in reservations can check out")
}

func (s *ConfirmedState) Edit(r *Reservation) error   { return nil }
func (s *ConfirmedState) Delete(r *Reservation) error { return nil }

// CheckedInState: guest in house
type CheckedInState struct{}

func (s *CheckedInState) Confirm(r *Reservation) error {
	return apperrors.InvalidTransition("guest already checked in")
}

func (s *CheckedInState) Cancel(r *Reservation) error {
	return apperrors.InvalidTransition("cannot cancel a reservation with a checked-in guest")
}

func (s *CheckedInState) CheckIn(r *Reservation, today time.Time) error {
	return apperrors.InvalidTransition("guest already checked in")
}

func (s *CheckedInState) CheckOut(r *Reservation) error {
	r.Status = ReservationStatusCheckOut
	return nil
}

func (s *CheckedInState) Edit(r *Reservation) error {
	return apperrors.InvalidTransition("room, client and dates cannot change after check-in")
}

func (s *CheckedInState) Delete(r *Reservation) error {
	return apperrors.GuardedDeletion("cannot delete a reservation with a checked-in guest", apperrors.ErrGuestInHouse)
}

// terminalState covers checkout and cancelled
type terminalState struct {
	status ReservationStatus
}

func (s *terminalState) err() error {
	return apperrors.InvalidTransition(fmt.Sprintf("reservation is %s", s.status))
}

func (s *terminalState) Confirm(r *Reservation) error                  { return s.err() }
func (s *terminalState) Cancel(r *Reservation) error                   { return s.err() }
func (s *terminalState) CheckIn(r *Reservation, today time.Time) error { return s.err() }
func (s *terminalState) CheckOut(r *Reservation) error                 { return s.err() }
func (s *terminalState) Edit(r *Reservation) error                     { return s.err() }
func (s *terminalState) Delete(r *Reservation) error                   { return nil }

// unknownState guards rows written with a status outside the enumeration
type unknownState struct {
	status ReservationStatus
}

func (s *unknownState) err() error {
	return apperrors.InvalidTransition(fmt.Sprintf("unknown reservation status %q", s.status))
}

func (s *unknownState) Confirm(r *Reservation) error                  { return s.err() }
func (s *unknownState) Cancel(r *Reservation) error                   { return s.err() }
func (s *unknownState) CheckIn(r *Reservation, today time.Time) error { return s.err() }
func (s *unknownState) CheckOut(r *Reservation) error                 { return s.err() }
func (s *unknownState) Edit(r *Reservation) error                     { return s.err() }
func (s *unknownState) Delete(r *Reservation) error                   { return s.err() }

// GetReservationState returns the state object for a status
func GetReservationState(status ReservationStatus) ReservationState {
	switch status {
	case ReservationStatusPending:
		return &PendingState{}
	case ReservationStatusConfirmed:
		return &ConfirmedState{}
	case ReservationStatusCheckIn:
		return &CheckedInState{}
	case ReservationStatusCheckOut, ReservationStatusCancelled:
		return &terminalState{status: status}
	default:
		return &unknownState{status: status}
	}
}
