// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/goal-agent/internal/application/usecase/goal"
	domainerror "github.com/finance-tracker/goal-agent/internal/domain/error"
	"github.com/finance-tracker/goal-agent/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/goal-agent/internal/integration/entrypoint/middleware"
)

// GoalAgentController handles goal agent endpoints.
type GoalAgentController struct {
	handleActionUseCase *goal.HandleActionUseCase
	listEpisodesUseCase *goal.ListEpisodesUseCase
}

// NewGoalAgentController creates a new goal agent controller instance.
func NewGoalAgentController(
	handleActionUseCase *goal.HandleActionUseCase,
	listEpisodesUseCase *goal.ListEpisodesUseCase,
) *GoalAgentController {
	return &GoalAgentController{
		handleActionUseCase: handleActionUseCase,
		listEpisodesUseCase: listEpisodesUseCase,
	}
}

// Actions handles POST /goal-agent/actions requests.
// The action is read from the request body.
func (c *GoalAgentController) Actions(ctx *gin.Context) {
	payload, ok := c.decodePayload(ctx)
	if !ok {
		return
	}

	output, ok := c.run(ctx, payload)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.ActionResponse{
		Action: string(output.Action),
		Result: dto.ToActionResult(output),
	})
}

// Adjust handles POST /goal-agent/adjust requests.
func (c *GoalAgentController) Adjust(ctx *gin.Context) {
	c.runAction(ctx, goal.ActionAdjustGoals)
}

// Track handles POST /goal-agent/track requests.
func (c *GoalAgentController) Track(ctx *gin.Context) {
	c.runAction(ctx, goal.ActionTrackGoal)
}

// Context handles POST /goal-agent/context requests.
func (c *GoalAgentController) Context(ctx *gin.Context) {
	c.runAction(ctx, goal.ActionBuildGoalContext)
}

// Episodes handles GET /goal-agent/users/:user_id/episodes requests.
func (c *GoalAgentController) Episodes(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "limit must be a positive integer",
				Code:  string(domainerror.ErrCodeInvalidRequestBody),
			})
			return
		}
		limit = parsed
	}

	input := goal.ListEpisodesInput{
		UserID: ctx.Param("user_id"),
		Limit:  limit,
	}

	output, err := c.listEpisodesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleGoalError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToEpisodeListResponse(output.Events))
}

// runAction forces the action implied by the route and responds with the bare result.
func (c *GoalAgentController) runAction(ctx *gin.Context, action goal.Action) {
	payload, ok := c.decodePayload(ctx)
	if !ok {
		return
	}
	payload["action"] = string(action)

	output, ok := c.run(ctx, payload)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActionResult(output))
}

func (c *GoalAgentController) run(ctx *gin.Context, payload map[string]any) (*goal.HandleActionOutput, bool) {
	caller, _ := middleware.GetServiceSubjectFromContext(ctx)
	slog.Debug("Goal agent request received", "caller", caller, "action", payload["action"])

	output, err := c.handleActionUseCase.Execute(ctx.Request.Context(), goal.ActionInput{Payload: payload})
	if err != nil {
		c.handleGoalError(ctx, err)
		return nil, false
	}
	return output, true
}

// decodePayload reads the body as a JSON object, keeping numbers exact.
func (c *GoalAgentController) decodePayload(ctx *gin.Context) (map[string]any, bool) {
	decoder := json.NewDecoder(ctx.Request.Body)
	decoder.UseNumber()

	var payload map[string]any
	if err := decoder.Decode(&payload); err != nil || payload == nil {
		details := "request body must be a JSON object"
		if err != nil {
			details = err.Error()
		}
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   domainerror.ErrInvalidRequestBody.Error(),
			Code:    string(domainerror.ErrCodeInvalidRequestBody),
			Details: details,
		})
		return nil, false
	}
	return payload, true
}

// handleGoalError maps goal domain errors to HTTP responses.
func (c *GoalAgentController) handleGoalError(ctx *gin.Context, err error) {
	var goalErr *domainerror.GoalError
	if errors.As(err, &goalErr) {
		statusCode := c.getStatusCodeForGoalError(goalErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: goalErr.Message,
			Code:  string(goalErr.Code),
		})
		return
	}

	slog.Error("Goal agent request failed", "path", ctx.FullPath(), "error", err)

	// Generic server error
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForGoalError maps goal error codes to HTTP status codes.
func (c *GoalAgentController) getStatusCodeForGoalError(code domainerror.GoalErrorCode) int {
	switch code {
	case domainerror.ErrCodeGoalNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUnsupportedAction:
		return http.StatusUnprocessableEntity
	case domainerror.ErrCodeMissingGoalID,
		domainerror.ErrCodeMissingUserID,
		domainerror.ErrCodeUnknownAction,
		domainerror.ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
