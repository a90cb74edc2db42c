package controllers

import (
	"time"

	"github.com/gin-gonic/gin"

	"hotel-manager/constants"
	"hotel-manager/dto"
	"hotel-manager/errors"
	"hotel-manager/response"
	"hotel-manager/services"
	"hotel-manager/validator"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{rooms: rooms}
}

// GetAllRooms godoc
// @Summary   List rooms ordered by number
// @Tags      rooms
// @Produce   json
// @Security  BearerAuth
// @Param     active    query     bool    false  "only active or inactive rooms"
// @Param     category  query     string  false  "single, double, suite or family"
// @Success   200       {object}  response.Response{data=[]models.Room}
// @Router    /rooms [get]
func (rc RoomController) GetAllRooms(c *gin.Context) {
	var filter dto.RoomFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FromError(c, queryError(err))
		return
	}

	rooms, err := rc.rooms.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

// GetRoomDetail godoc
// @Summary   Room with its reservations
// @Tags      rooms
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "room id"
// @Success   200  {object}  response.Response{data=models.Room}
// @Failure   404  {object}  response.Response
// @Router    /rooms/{id} [get]
func (rc RoomController) GetRoomDetail(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	room, err := rc.rooms.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// GetRoomByNumber godoc
// @Summary   Find a room by its number; a miss suggests the closest number
// @Tags      rooms
// @Produce   json
// @Security  BearerAuth
// @Param     number  path      string  true  "room number"
// @Success   200     {object}  response.Response{data=models.Room}
// @Failure   404     {object}  response.Response
// @Router    /rooms/number/{number} [get]
func (rc RoomController) GetRoomByNumber(c *gin.Context) {
	room, err := rc.rooms.GetByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// CreateRoom godoc
// @Summary   Create a room
// @Tags      rooms
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.RoomRequest  true  "room"
// @Success   201   {object}  response.Response{data=models.Room}
// @Failure   409   {object}  response.Response
// @Router    /rooms [post]
func (rc RoomController) CreateRoom(c *gin.Context) {
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	room, err := rc.rooms.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, room)
}

// UpdateRoom godoc
// @Summary   Replace a room's details
// @Tags      rooms
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      int              true  "room id"
// @Param     body  body      dto.RoomRequest  true  "room"
// @Success   200   {object}  response.Response{data=models.Room}
// @Router    /rooms/{id} [put]
func (rc RoomController) UpdateRoom(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	room, err := rc.rooms.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, room)
}

// DeleteRoom godoc
// @Summary   Delete a room and its past reservations
// @Tags      rooms
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "room id"
// @Success   200  {object}  response.Response{data=dto.IDResponse}
// @Failure   409  {object}  response.Response  "room has active reservations"
// @Router    /rooms/{id} [delete]
func (rc RoomController) DeleteRoom(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := rc.rooms.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}

// GetAvailableRooms godoc
// @Summary   Active rooms free for the whole stay
// @Tags      rooms
// @Produce   json
// @Security  BearerAuth
// @Param     checkIn   query     string  true  "YYYY-MM-DD"
// @Param     checkOut  query     string  true  "YYYY-MM-DD"
// @Success   200       {object}  response.Response{data=[]models.Room}
// @Router    /rooms/available [get]
func (rc RoomController) GetAvailableRooms(c *gin.Context) {
	checkIn, checkOut, ok := bindDateRange(c)
	if !ok {
		return
	}

	rooms, err := rc.rooms.Available(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, rooms)
}

// GetRoomAvailability godoc
// @Summary   Whether one room can be booked for the stay
// @Tags      rooms
// @Produce   json
// @Security  BearerAuth
// @Param     id        path      int     true  "room id"
// @Param     checkIn   query     string  true  "YYYY-MM-DD"
// @Param     checkOut  query     string  true  "YYYY-MM-DD"
// @Success   200       {object}  response.Response{data=dto.RoomAvailabilityResponse}
// @Router    /rooms/{id}/availability [get]
func (rc RoomController) GetRoomAvailability(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	checkIn, checkOut, ok := bindDateRange(c)
	if !ok {
		return
	}

	available, err := rc.rooms.Availability(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.RoomAvailabilityResponse{
		RoomID:    id,
		CheckIn:   checkIn.Format(constants.DateLayout),
		CheckOut:  checkOut.Format(constants.DateLayout),
		Available: available,
	})
}

// UploadRoomPhoto godoc
// @Summary   Upload the room's photo
// @Tags      rooms
// @Accept    multipart/form-data
// @Produce   json
// @Security  BearerAuth
// @Param     id     path      int   true  "room id"
// @Param     photo  formData  file  true  "image"
// @Success   200    {object}  response.Response{data=dto.RoomPhotoResponse}
// @Router    /rooms/{id}/photo [post]
func (rc RoomController) UploadRoomPhoto(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		response.FromError(c, errors.NewAppError(errors.ErrCodeRequiredField, "photo is required", err))
		return
	}
	src, err := file.Open()
	if err != nil {
		response.FromError(c, errors.DBError("failed to read upload", err))
		return
	}
	defer src.Close()

	room, err := rc.rooms.AttachPhoto(c.Request.Context(), id, src)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.RoomPhotoResponse{RoomID: room.ID, PhotoURL: room.PhotoURL})
}

func bindDateRange(c *gin.Context) (checkIn, checkOut time.Time, ok bool) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.FromError(c, queryError(err))
		return
	}
	if err := validator.Struct(q); err != nil {
		response.FromError(c, err)
		return
	}
	var err error
	if checkIn, err = validator.ParseDate("checkIn", q.CheckIn); err != nil {
		response.FromError(c, err)
		return
	}
	if checkOut, err = validator.ParseDate("checkOut", q.CheckOut); err != nil {
		response.FromError(c, err)
		return
	}
	return checkIn, checkOut, true
}
