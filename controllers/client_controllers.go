package controllers

import (
	"github.com/gin-gonic/gin"

	"hotel-manager/dto"
	"hotel-manager/response"
	"hotel-manager/services"
)

type ClientController struct {
	clients *services.ClientService
}

func NewClientController(clients *services.ClientService) ClientController {
	return ClientController{clients: clients}
}

// GetClients godoc
// @Summary   List clients, optionally fuzzy-searched by name, email, document or phone
// @Tags      clients
// @Produce   json
// @Security  BearerAuth
// @Param     q      query     string  false  "search text"
// @Param     page   query     int     false  "page, 1-based"
// @Param     limit  query     int     false  "page size"
// @Success   200    {object}  response.Response{data=[]models.Client}
// @Router    /clients [get]
func (cc ClientController) GetClients(c *gin.Context) {
	var filter dto.ClientFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.FromError(c, queryError(err))
		return
	}

	clients, total, err := cc.clients.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if filter.Limit > 0 {
		response.SuccessWithPagination(c, clients, max(filter.Page, 1), filter.Limit, total)
		return
	}
	response.Success(c, clients)
}

// GetClient godoc
// @Summary   Client with reservation history
// @Tags      clients
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "client id"
// @Success   200  {object}  response.Response{data=models.Client}
// @Failure   404  {object}  response.Response
// @Router    /clients/{id} [get]
func (cc ClientController) GetClient(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	client, err := cc.clients.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, client)
}

// CreateClient godoc
// @Summary   Create a client
// @Tags      clients
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     body  body      dto.ClientRequest  true  "client"
// @Success   201   {object}  response.Response{data=models.Client}
// @Failure   409   {object}  response.Response
// @Router    /clients [post]
func (cc ClientController) CreateClient(c *gin.Context) {
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	client, err := cc.clients.Create(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, client)
}

// UpdateClient godoc
// @Summary   Replace a client's details
// @Tags      clients
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      int                true  "client id"
// @Param     body  body      dto.ClientRequest  true  "client"
// @Success   200   {object}  response.Response{data=models.Client}
// @Router    /clients/{id} [put]
func (cc ClientController) UpdateClient(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	client, err := cc.clients.Update(c.Request.Context(), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, client)
}

// DeleteClient godoc
// @Summary   Delete a client and its past reservations
// @Tags      clients
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      int  true  "client id"
// @Success   200  {object}  response.Response{data=dto.IDResponse}
// @Failure   409  {object}  response.Response  "client has active reservations"
// @Router    /clients/{id} [delete]
func (cc ClientController) DeleteClient(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := cc.clients.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.IDResponse{ID: id})
}
