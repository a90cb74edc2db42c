package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"hotel-manager/dto"
	"hotel-manager/models"
	"hotel-manager/response"
	"hotel-manager/services"
)

type ReservationController struct {
	reservations *services.ReservationFacade
}

func NewReservationController(reservations *services.ReservationFacade) ReservationController {
	return ReservationController{reservations: reservations}
}

// GetReservations godoc
// @Summary   List reservations ordered by check-in
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     status    query     string  false  "pending, confirmed, checkin, checkout or cancelled"
// @Param     clientId  query     int     false  "client id"
// @Param     roomId    query     int     false  "room id"
// @Param     from      query     string  false  "stays ending after this date"
// @Param     to        query     string  false  "stays starting before this date"
// @Param     page      query     int     false  "page, 1-based"
// @Param     limit     query     int     false  "page size"
// @Success   200       {object}  response.Response{data=[]models.Reservation}
// @Router    /reservations [get]
func (rc ReservationController) GetReservations(c *gin.Context) {
	var filter dto.ReservationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FromError(c, queryError(err))
		return
	}

	reservations, total, err := rc.reservations.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if filter.Limit > 0 {
		response.SuccessWithPagination(c, reservations, max(filter.Page, 1), filter.Limit, total)
		return
	}
	response.Success(c, reservations)
}

// GetReservation godoc
// @Summary   Reservation with client and room
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "reservation id"
// @Success   200  {object}  response.Response{data=models.Reservation}
// @Failure   404  {object}  response.Response
// @Router    /reservations/{id} [get]
func (rc ReservationController) GetReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := rc.reservations.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

// CreateReservation godoc
// @Summary   Book a room; the reservation starts pending
// @Tags      reservations
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.CreateReservationRequest  true  "reservation"
// @Success   201   {object}  response.Response{data=models.Reservation}
// @Failure   409   {object}  response.Response  "room already booked for those dates"
// @Router    /reservations [post]
func (rc ReservationController) CreateReservation(c *gin.Context) {
	var req dto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	res, err := rc.reservations.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, res)
}

// UpdateReservation godoc
// @Summary   Change any subset of client, room, dates, status and notes
// @Tags      reservations
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      int                           true  "reservation id"
// @Param     body  body      dto.UpdateReservationRequest  true  "fields to change"
// @Success   200   {object}  response.Response{data=models.Reservation}
// @Failure   422   {object}  response.Response
// @Router    /reservations/{id} [put]
func (rc ReservationController) UpdateReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	res, err := rc.reservations.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

// ConfirmReservation godoc
// @Summary   pending -> confirmed
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "reservation id"
// @Success   200  {object}  response.Response{data=models.Reservation}
// @Failure   422  {object}  response.Response
// @Router    /reservations/{id}/confirm [post]
func (rc ReservationController) ConfirmReservation(c *gin.Context) {
	rc.transition(c, rc.reservations.Confirm)
}

// CancelReservation godoc
// @Summary   pending or confirmed -> cancelled
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "reservation id"
// @Success   200  {object}  response.Response{data=models.Reservation}
// @Failure   422  {object}  response.Response
// @Router    /reservations/{id}/cancel [post]
func (rc ReservationController) CancelReservation(c *gin.Context) {
	rc.transition(c, rc.reservations.Cancel)
}

// CheckInReservation godoc
// @Summary   confirmed -> checkin, from the check-in date on
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "reservation id"
// @Success   200  {object}  response.Response{data=models.Reservation}
// @Failure   422  {object}  response.Response
// @Router    /reservations/{id}/checkin [post]
func (rc ReservationController) CheckInReservation(c *gin.Context) {
	rc.transition(c, rc.reservations.CheckIn)
}

// CheckOutReservation godoc
// @Summary   checkin -> checkout
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "reservation id"
// @Success   200  {object}  response.Response{data=models.Reservation}
// @Failure   422  {object}  response.Response
// @Router    /reservations/{id}/checkout [post]
func (rc ReservationController) CheckOutReservation(c *gin.Context) {
	rc.transition(c, rc.reservations.CheckOut)
}

func (rc ReservationController) transition(c *gin.Context, run func(context.Context, uint) (*models.Reservation, error)) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	res, err := run(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, res)
}

// DeleteReservation godoc
// @Summary   Delete a reservation unless the guest is checked in
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "reservation id"
// @Success   200  {object}  response.Response{data=dto.IDResponse}
// @Failure   409  {object}  response.Response
// @Router    /reservations/{id} [delete]
func (rc ReservationController) DeleteReservation(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := rc.reservations.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

// QuoteReservation godoc
// @Summary   Price a stay without booking it
// @Tags      reservations
// @Produce   json
// @Security  BearerAuth
// @Param     roomId    query     int     true  "room id"
// @Param     checkIn   query     string  true  "YYYY-MM-DD"
// @Param     checkOut  query     string  true  "YYYY-MM-DD"
// @Success   200       {object}  response.Response{data=booking.Quote}
// @Router    /reservations/quote [get]
func (rc ReservationController) QuoteReservation(c *gin.Context) {
	var q dto.QuoteQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, queryError(err))
		return
	}

	quote, err := rc.reservations.Quote(c.Request.Context(), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, quote)
}
