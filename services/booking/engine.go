package booking

import (
	"context"
	"fmt"
	"time"

	"hotel-manager/builders"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/logger"
)

// Engine owns the reservation lifecycle: availability, price and status transitions
type Engine struct {
	repo   Repository
	clock  Clock
	logger logger.Logger
}

type EngineOptions struct {
	Repo   Repository
	Clock  Clock
	Logger logger.Logger
}

func NewEngine(opts EngineOptions) *Engine {
	e := &Engine{
		repo:   opts.Repo,
		clock:  opts.Clock,
		logger: opts.Logger,
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.logger == nil {
		e.logger = logger.Nop{}
	}
	return e
}

type CreateInput struct {
	ClientID uint
	RoomID   uint
	CheckIn  time.Time
	CheckOut time.Time
	Notes    string
}

// UpdateInput carries only the fields the caller wants to change
type UpdateInput struct {
	ClientID *uint
	RoomID   *uint
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *models.ReservationStatus
	Notes    *string
}

// Quote is a price preview for a room and date range
type Quote struct {
	RoomID      uint    `json:"roomId"`
	Nights      int     `json:"nights"`
	NightlyRate float64 `json:"nightlyRate"`
	TotalPrice  float64 `json:"totalPrice"`
	Available   bool    `json:"available"`
}

// Create books a room for a client. The reservation starts pending.
func (e *Engine) Create(ctx context.Context, in CreateInput) (*models.Reservation, error) {
	if in.ClientID == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "clientId is required", nil)
	}
	if in.RoomID == 0 {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "roomId is required", nil)
	}
	in.CheckIn, in.CheckOut = calendarDates(in.CheckIn, in.CheckOut)
	if err := validateRange(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}

	var created *models.Reservation
	err := e.repo.Atomic(ctx, []uint{in.RoomID}, func(tx Repository) error {
		if _, err := tx.LockClient(ctx, in.ClientID, false); err != nil {
			return err
		}
		room, err := tx.FindRoom(ctx, in.RoomID)
		if err != nil {
			return err
		}
		if !room.Active {
			return apperrors.Validation(fmt.Sprintf("room %s is not available for new reservations", room.Number), apperrors.ErrRoomInactive)
		}
		if err := ensureAvailable(ctx, tx, room, in.CheckIn, in.CheckOut, 0); err != nil {
			return err
		}

		res := builders.NewReservationBuilder().
			WithClient(in.ClientID).
			WithRoom(in.RoomID).
			WithStay(in.CheckIn, in.CheckOut).
			WithTotalPrice(ComputeTotal(room.NightlyRate, in.CheckIn, in.CheckOut)).
			WithNotes(in.Notes).
			Build()
		if err := tx.CreateReservation(ctx, res); err != nil {
			return err
		}
		created = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("reservation %d created: room %d, %s -> %s, total %.2f",
		created.ID, created.RoomID, created.CheckIn.Format("2006-01-02"), created.CheckOut.Format("2006-01-02"), created.TotalPrice)
	return created, nil
}

// Update edits a reservation. Changing room, client or dates re-runs the availability check,
// recomputes the price and, unless a status is supplied, puts the reservation back to pending.
// checkin and checkout are never reachable from here.
func (e *Engine) Update(ctx context.Context, id uint, in UpdateInput) (*models.Reservation, error) {
	if in.CheckIn != nil {
		d := models.DateOnly(*in.CheckIn)
		in.CheckIn = &d
	}
	if in.CheckOut != nil {
		d := models.DateOnly(*in.CheckOut)
		in.CheckOut = &d
	}

	current, err := e.repo.FindReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	roomIDs := []uint{current.RoomID}
	if in.RoomID != nil && *in.RoomID != current.RoomID {
		roomIDs = append(roomIDs, *in.RoomID)
	}

	var updated *models.Reservation
	err = e.repo.Atomic(ctx, roomIDs, func(tx Repository) error {
		res, err := tx.FindReservation(ctx, id)
		if err != nil {
			return err
		}
		if res.RoomID != current.RoomID {
			return apperrors.Conflict("reservation was changed by another request, reload and try again", nil)
		}

		next := *res
		bookingChanged := applyBookingFields(&next, in)

		if bookingChanged {
			if err := models.GetReservationState(res.Status).Edit(res); err != nil {
				return err
			}
			if in.ClientID != nil && *in.ClientID == 0 {
				return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "clientId is required", nil)
			}
			if in.RoomID != nil && *in.RoomID == 0 {
				return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "roomId is required", nil)
			}
			if err := validateRange(next.CheckIn, next.CheckOut); err != nil {
				return err
			}
			if _, err := tx.LockClient(ctx, next.ClientID, false); err != nil {
				return err
			}
		}

		if err := e.applyStatus(res, &next, in.Status, bookingChanged); err != nil {
			return err
		}

		if bookingChanged {
			room, err := tx.FindRoom(ctx, next.RoomID)
			if err != nil {
				return err
			}
			if next.RoomID != res.RoomID && !room.Active {
				return apperrors.Validation(fmt.Sprintf("room %s is not available for new reservations", room.Number), apperrors.ErrRoomInactive)
			}
			if next.Status.IsActive() {
				if err := ensureAvailable(ctx, tx, room, next.CheckIn, next.CheckOut, next.ID); err != nil {
					return err
				}
			}
			next.TotalPrice = ComputeTotal(room.NightlyRate, next.CheckIn, next.CheckOut)
		}

		if in.Notes != nil {
			next.Notes = *in.Notes
		}

		if err := tx.UpdateReservation(ctx, &next); err != nil {
			return err
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("reservation %d updated: status %s, total %.2f", updated.ID, updated.Status, updated.TotalPrice)
	return updated, nil
}

// applyBookingFields copies room, client and dates from in and reports whether any differs
func applyBookingFields(next *models.Reservation, in UpdateInput) bool {
	changed := false
	if in.ClientID != nil && *in.ClientID != next.ClientID {
		next.ClientID = *in.ClientID
		changed = true
	}
	if in.RoomID != nil && *in.RoomID != next.RoomID {
		next.RoomID = *in.RoomID
		changed = true
	}
	if in.CheckIn != nil && !in.CheckIn.Equal(next.CheckIn) {
		next.CheckIn = *in.CheckIn
		changed = true
	}
	if in.CheckOut != nil && !in.CheckOut.Equal(next.CheckOut) {
		next.CheckOut = *in.CheckOut
		changed = true
	}
	return changed
}

// applyStatus resolves the status requested by a plain update
func (e *Engine) applyStatus(res, next *models.Reservation, requested *models.ReservationStatus, bookingChanged bool) error {
	target := res.Status
	if requested != nil {
		target = *requested
	} else if bookingChanged {
		target = models.ReservationStatusPending
	}

	if !target.IsValid() {
		return apperrors.Validation(fmt.Sprintf("invalid reservation status %q", target), nil)
	}
	if target == res.Status {
		next.Status = target
		return nil
	}

	state := models.GetReservationState(res.Status)
	switch target {
	case models.ReservationStatusPending:
		// only reachable as the revert that accompanies an edit
		if !bookingChanged {
			return apperrors.InvalidTransition(fmt.Sprintf("cannot move a %s reservation back to pending", res.Status))
		}
		next.Status = models.ReservationStatusPending
		return nil
	case models.ReservationStatusConfirmed:
		return state.Confirm(next)
	case models.ReservationStatusCancelled:
		return state.Cancel(next)
	case models.ReservationStatusCheckIn:
		return apperrors.InvalidTransition("use the check-in operation to check a guest in")
	case models.ReservationStatusCheckOut:
		return apperrors.InvalidTransition("use the check-out operation to check a guest out")
	default:
		return apperrors.Validation(fmt.Sprintf("invalid reservation status %q", target), nil)
	}
}

// Confirm moves a pending reservation to confirmed
func (e *Engine) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	return e.transition(ctx, id, "confirm", func(state models.ReservationState, r *models.Reservation) error {
		return state.Confirm(r)
	})
}

// Cancel frees the room for the reservation's interval
func (e *Engine) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	return e.transition(ctx, id, "cancel", func(state models.ReservationState, r *models.Reservation) error {
		return state.Cancel(r)
	})
}

// CheckIn requires a confirmed reservation whose check-in day is today or earlier
func (e *Engine) CheckIn(ctx context.Context, id uint) (*models.Reservation, error) {
	today := e.clock.Now()
	return e.transition(ctx, id, "check-in", func(state models.ReservationState, r *models.Reservation) error {
		return state.CheckIn(r, today)
	})
}

// CheckOut requires a checked-in reservation
func (e *Engine) CheckOut(ctx context.Context, id uint) (*models.Reservation, error) {
	return e.transition(ctx, id, "check-out", func(state models.ReservationState, r *models.Reservation) error {
		return state.CheckOut(r)
	})
}

func (e *Engine) transition(ctx context.Context, id uint, name string, apply func(models.ReservationState, *models.Reservation) error) (*models.Reservation, error) {
	current, err := e.repo.FindReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	var out *models.Reservation
	err = e.repo.Atomic(ctx, []uint{current.RoomID}, func(tx Repository) error {
		res, err := tx.FindReservation(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(models.GetReservationState(res.Status), res); err != nil {
			return err
		}
		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Info("reservation %d %s: now %s", out.ID, name, out.Status)
	return out, nil
}

// DeleteReservation removes a reservation unless the guest is checked in
func (e *Engine) DeleteReservation(ctx context.Context, id uint) error {
	current, err := e.repo.FindReservation(ctx, id)
	if err != nil {
		return err
	}

	err = e.repo.Atomic(ctx, []uint{current.RoomID}, func(tx Repository) error {
		res, err := tx.FindReservation(ctx, id)
		if err != nil {
			return err
		}
		if err := models.GetReservationState(res.Status).Delete(res); err != nil {
			return err
		}
		return tx.DeleteReservation(ctx, id)
	})
	if err != nil {
		return err
	}

	e.logger.Info("reservation %d deleted", id)
	return nil
}

// DeleteClient refuses while the client holds an active reservation
func (e *Engine) DeleteClient(ctx context.Context, id uint) error {
	err := e.repo.Atomic(ctx, nil, func(tx Repository) error {
		// blocks bookings for this client until the delete commits
		if _, err := tx.LockClient(ctx, id, true); err != nil {
			return err
		}
		n, err := tx.CountActiveByClient(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.GuardedDeletion(fmt.Sprintf("client %d has %d active reservation(s)", id, n), apperrors.ErrActiveReservations)
		}
		return tx.DeleteClient(ctx, id)
	})
	if err != nil {
		return err
	}

	e.logger.Info("client %d deleted", id)
	return nil
}

// DeleteRoom refuses while the room holds an active reservation
func (e *Engine) DeleteRoom(ctx context.Context, id uint) error {
	err := e.repo.Atomic(ctx, []uint{id}, func(tx Repository) error {
		if _, err := tx.FindRoom(ctx, id); err != nil {
			return err
		}
		n, err := tx.CountActiveByRoom(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperrors.GuardedDeletion(fmt.Sprintf("room %d has %d active reservation(s)", id, n), apperrors.ErrActiveReservations)
		}
		return tx.DeleteRoom(ctx, id)
	})
	if err != nil {
		return err
	}

	e.logger.Info("room %d deleted", id)
	return nil
}

// Quote prices a stay without writing anything
func (e *Engine) Quote(ctx context.Context, roomID uint, checkIn, checkOut time.Time) (*Quote, error) {
	checkIn, checkOut = calendarDates(checkIn, checkOut)
	if err := validateRange(checkIn, checkOut); err != nil {
		return nil, err
	}
	room, err := e.repo.FindRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	available := false
	if room.Active {
		available, err = e.IsAvailable(ctx, roomID, checkIn, checkOut, 0)
		if err != nil {
			return nil, err
		}
	}
	return &Quote{
		RoomID:      room.ID,
		Nights:      Nights(checkIn, checkOut),
		NightlyRate: room.NightlyRate,
		TotalPrice:  ComputeTotal(room.NightlyRate, checkIn, checkOut),
		Available:   available,
	}, nil
}
