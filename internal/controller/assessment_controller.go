package controller

import (
	"encoding/json"

	"brightsprout_backend/internal/model"
	"brightsprout_backend/internal/service"
	"brightsprout_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

// Generate godoc
// @Summary Generate the baseline assessment for a child
// @Description Generates five multiple-choice questions on first call. Later calls return the stored set unchanged, regardless of the submitted parameters.
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateAssessmentRequest true "learner profile"
// @Success 200 {object} util.Response{data=[]model.AssessmentQuestion}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 502 {object} util.Response "model returned an unusable result"
// @Failure 503 {object} util.Response "model unavailable, retry later"
// @Router /api/assessments/generate [post]
func (c *AssessmentController) Generate(ctx *gin.Context) {
	c.generate(ctx, false)
}

// GenerateVisual godoc
// @Summary Generate the visual assessment for a child
// @Description Image-matching variant for pre-readers, with the same generate-once behavior.
// @Tags assessments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.GenerateAssessmentRequest true "learner profile"
// @Success 200 {object} util.Response{data=[]model.VisualQuestion}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 502 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /api/assessments/generate-visual [post]
func (c *AssessmentController) GenerateVisual(ctx *gin.Context) {
	c.generate(ctx, true)
}

func (c *AssessmentController) generate(ctx *gin.Context, visual bool) {
	var req service.GenerateAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	var (
		questions json.RawMessage
		err       error
	)
	if visual {
		questions, err = c.AssessmentService.GenerateVisualAssessment(ctx.Request.Context(), util.GetUserFromContext(ctx), req)
	} else {
		questions, err = c.AssessmentService.GenerateAssessment(ctx.Request.Context(), util.GetUserFromContext(ctx), req)
	}
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}

// Get godoc
// @Summary Fetch a child's stored assessment
// @Tags assessments
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "child uid"
// @Param   kind query string false "assessment kind (baseline or visual)" default(baseline)
// @Success 200 {object} util.Response{data=[]model.AssessmentQuestion}
// @Failure 404 {object} util.Response "no assessment generated yet"
// @Router /api/children/{id}/assessment [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	kind := model.AssessmentKind(ctx.DefaultQuery("kind", string(model.AssessmentBaseline)))
	if kind != model.AssessmentBaseline && kind != model.AssessmentVisual {
		util.BadRequest(ctx, "kind must be baseline or visual")
		return
	}

	questions, err := c.AssessmentService.GetAssessment(ctx.Param("id"), kind)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}

	util.Success(ctx, questions)
}
