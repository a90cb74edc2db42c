package controllers

import (
	"github.com/gin-gonic/gin"

	"hotel-manager/constants"
	"hotel-manager/dto"
	"hotel-manager/models"
	"hotel-manager/response"
	"hotel-manager/services"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{auth: auth}
}

// RegisterUser godoc
// @Summary  Register a staff account; creating an ADMIN needs an admin token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      dto.RegisterRequest  true  "account"
// @Success  201   {object}  response.Response{data=models.User}
// @Failure  400   {object}  response.Response
// @Failure  409   {object}  response.Response
// @Router   /auth/register [post]
func (a AuthController) RegisterUser(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	// only an admin may create another admin
	if req.Role == models.UserRoleAdmin {
		info, err := a.auth.ParseToken(c.GetHeader("Authorization"))
		if err != nil || info.Role != models.UserRoleAdmin {
			response.Forbidden(c)
			return
		}
	}

	user, err := a.auth.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, user)
}

// Login godoc
// @Summary  Exchange email and password for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body  body      dto.LoginRequest  true  "credentials"
// @Success  200   {object}  response.Response{data=dto.LoginResponse}
// @Failure  401   {object}  response.Response
// @Router   /auth/login [post]
func (a AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, bindError(err))
		return
	}

	login, err := a.auth.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, login)
}

// Me godoc
// @Summary   Current user
// @Tags      auth
// @Produce   json
// @Security  BearerAuth
// @Success   200  {object}  response.Response{data=models.User}
// @Router    /auth/me [get]
func (a AuthController) Me(c *gin.Context) {
	user, err := a.auth.Me(c.Request.Context(), c.GetUint(constants.ContextUserID))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, user)
}
