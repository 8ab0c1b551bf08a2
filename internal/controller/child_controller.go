package controller

import (
	"brightsprout_backend/internal/service"
	"brightsprout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChildController struct {
	ChildService *service.ChildService
}

func NewChildController(childService *service.ChildService) *ChildController {
	return &ChildController{ChildService: childService}
}

// AddChild godoc
// @Summary Create a child profile
// @Description Adds a learner profile under the authenticated parent account
// @Tags children
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.AddChildRequest true "child profile"
// @Success 201 {object} util.Response{data=model.Child}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 409 {object} util.Response "username already taken"
// @Router /api/children [post]
func (c *ChildController) AddChild(ctx *gin.Context) {
	var req service.AddChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	child, err := c.ChildService.AddChild(util.GetUserFromContext(ctx), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Created(ctx, child)
}

// ChildLoginRequest defines the child login payload
// swagger:model ChildLoginRequest
type ChildLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginChild godoc
// @Summary Child login
// @Description Exchanges a child's username and password for a profile-scoped token
// @Tags children
// @Accept  json
// @Produce  json
// @Param   body body ChildLoginRequest true "credentials"
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response "invalid credentials"
// @Router /api/children/login [post]
func (c *ChildController) LoginChild(ctx *gin.Context) {
	var req ChildLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, child, err := c.ChildService.LoginChild(req.Username, req.Password)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"token": token, "child": child})
}

// ListChildren godoc
// @Summary List the parent's child profiles
// @Tags children
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Child}
// @Failure 401 {object} util.Response
// @Router /api/children [get]
func (c *ChildController) ListChildren(ctx *gin.Context) {
	children, err := c.ChildService.ListChildren(util.GetUserFromContext(ctx))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, children)
}

// GetChild godoc
// @Summary Fetch one child profile
// @Tags children
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "child uid"
// @Success 200 {object} util.Response{data=model.Child}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{id} [get]
func (c *ChildController) GetChild(ctx *gin.Context) {
	child, err := c.ChildService.GetChild(util.GetUserFromContext(ctx), ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, child)
}

// UpdatePassword godoc
// @Summary Rotate a child's password
// @Tags children
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "child uid"
// @Param   body body service.UpdateChildPasswordRequest true "new password"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/children/{id}/password [put]
func (c *ChildController) UpdatePassword(ctx *gin.Context) {
	var req service.UpdateChildPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ChildService.UpdateChildPassword(util.GetUserFromContext(ctx), ctx.Param("id"), req.Password); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
