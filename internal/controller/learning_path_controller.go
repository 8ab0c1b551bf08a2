package controller

import (
	"brightsprout_backend/internal/service"
	"brightsprout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearningPathController struct {
	PathService *service.LearningPathService
}

func NewLearningPathController(pathService *service.LearningPathService) *LearningPathController {
	return &LearningPathController{PathService: pathService}
}

// Generate godoc
// @Summary Generate a personalized learning path
// @Description Aggregates the submitted answer history, derives strengths and weaknesses, and produces a fresh path. Every call regenerates; the previous path is replaced.
// @Tags learning-paths
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateLearningPathRequest true "learner profile and answer history"
// @Success 200 {object} util.Response{data=model.LearningPathResponse}
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 401 {object} util.Response
// @Failure 502 {object} util.Response "model returned an unusable result"
// @Failure 503 {object} util.Response "model unavailable, retry later"
// @Router /api/learning-paths/generate [post]
func (c *LearningPathController) Generate(ctx *gin.Context) {
	var req service.GenerateLearningPathRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	path, err := c.PathService.GenerateLearningPath(ctx.Request.Context(), util.GetUserFromContext(ctx), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, path)
}

// Get godoc
// @Summary Fetch a child's stored learning path
// @Tags learning-paths
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "child uid"
// @Success 200 {object} util.Response{data=service.StoredLearningPath}
// @Failure 404 {object} util.Response "no path generated yet"
// @Router /api/children/{id}/learning-path [get]
func (c *LearningPathController) Get(ctx *gin.Context) {
	stored, err := c.PathService.GetLearningPath(ctx.Param("id"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, stored)
}
