package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/engine"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/models/reports"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/bsm/redislock"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	defaultRecommendationLimit = 50
	defaultCycleCountTasks     = 50
	defaultAuditLocations      = 20
	defaultTrainingDays        = 30
)

func requireSession(c *gin.Context) (string, bool) {
	username, ok := utils.GetUsernameFromContext(c.Request.Context())
	if !ok || username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return username, true
}

type signInInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func signInHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input signInInput
		if err := c.ShouldBindJSON(&input); err != nil {
			var validationErrors validator.ValidationErrors
			if errors.As(err, &validationErrors) {
				c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		token, user, err := models.SignIn(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token": token,
			"user": gin.H{
				"id":        user.ID,
				"username":  user.Username,
				"full_name": user.FullName,
				"role":      user.Role,
			},
		})
	}
}

// GET /api/actions/recommendations?type=&priority=&status=&limit=
func listRecommendationsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "listRecommendations")
		defer span.End()

		filter := models.ActionRecommendationFilter{
			Status: models.ActionStatusPending,
			Limit:  defaultRecommendationLimit,
		}

		if v := c.Query("type"); v != "" {
			actionType, err := models.ParseActionType(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Type = actionType
		}
		if v := c.Query("priority"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be an integer between 1 and 4"})
				return
			}
			priority, err := models.ParseActionPriority(n)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Priority = priority
		}
		if v := c.Query("status"); v != "" {
			status, err := models.ParseActionStatus(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Status = status
		}
		if v := c.Query("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
				return
			}
			filter.Limit = n
		}

		actions, err := models.ListActionRecommendations(ctx, filter)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "listRecommendations", "list", filter, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recommendations"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"count":   len(actions),
			"actions": actions,
		})
	}
}

type generateInput struct {
	Zone string `json:"zone"`
}

// POST /api/actions/generate
func generateActionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "generateActions")
		defer span.End()

		username, ok := requireSession(c)
		if !ok {
			return
		}

		var input generateInput
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&input); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		// Best-effort cross-instance lock. Generation is idempotent, so a
		// concurrent run is wasted work rather than corruption; when Redis
		// is unavailable we still run.
		if locker := config.GetRedisLock(); locker != nil {
			lock, err := locker.Obtain(ctx, "Lock:GenerateActions", 60*time.Second, nil)
			if err == nil {
				defer lock.Release(ctx)
			} else if errors.Is(err, redislock.ErrNotObtained) {
				c.JSON(http.StatusConflict, gin.H{"error": "a generation run is already in progress"})
				return
			}
		}

		gen := engine.NewGenerator(engine.DatabaseStore{}, engine.DatabaseStore{}, config.GetLogger())
		result, err := gen.Generate(ctx, engine.Scope{Zone: input.Zone})
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "generateActions", "generate", input, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate recommendations"})
			return
		}

		if len(result.Actions) > 0 {
			ids := make([]string, 0, len(result.Actions))
			for _, a := range result.Actions {
				ids = append(ids, a.ID)
			}
			correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
			if err := config.PublishActionEvent(ctx, config.ActionEventMessage{
				EventType:     "action.generated",
				ActionIds:     ids,
				Count:         len(ids),
				OccurredAt:    time.Now().UTC(),
				CorrelationId: correlationId,
			}); err != nil {
				// Event delivery is advisory; the actions are already persisted.
				config.LogError(config.GetLogger(), "actionEngine", "generateActions", "publish", ids, err)
			}
		}

		config.GetLogger().WithField("username", username).
			Info("generated ", len(result.Actions), " action recommendations")

		c.JSON(http.StatusOK, gin.H{
			"generated": len(result.Actions),
			"skipped":   result.SkippedDuplicates,
			"failed":    result.FailedCount,
			"actions":   result.Actions,
		})
	}
}

// GET /api/actions/cycle-count-list?max_tasks=&zone=&priority=
func cycleCountListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "cycleCountList")
		defer span.End()

		maxTasks := defaultCycleCountTasks
		if v := c.Query("max_tasks"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "max_tasks must be a positive integer"})
				return
			}
			maxTasks = n
		}
		zone := c.Query("zone")

		// priority is a floor: only tasks at or above it are listed.
		var minPriority models.ActionPriority
		if v := c.Query("priority"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be an integer between 1 and 4"})
				return
			}
			minPriority, err = models.ParseActionPriority(n)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		resp, err := reports.GetCycleCountList(ctx, maxTasks, zone, minPriority)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "cycleCountList", "report", map[string]any{"maxTasks": maxTasks, "zone": zone}, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build cycle count list"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /api/actions/audit-list?max_locations=
func auditListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "auditList")
		defer span.End()

		maxLocations := defaultAuditLocations
		if v := c.Query("max_locations"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "max_locations must be a positive integer"})
				return
			}
			maxLocations = n
		}

		resp, err := reports.GetAuditList(ctx, maxLocations)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "auditList", "report", maxLocations, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build audit list"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /api/actions/reslot-suggestions
func reslotSuggestionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "reslotSuggestions")
		defer span.End()

		resp, err := reports.GetReslotSuggestions(ctx)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "reslotSuggestions", "report", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build reslot suggestions"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GET /api/actions/training-flags?days=
func trainingFlagsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "trainingFlags")
		defer span.End()

		days := defaultTrainingDays
		if v := c.Query("days"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
				return
			}
			days = n
		}

		resp, err := reports.GetTrainingFlags(ctx, days)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "trainingFlags", "report", days, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build training flags"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

type updateStatusInput struct {
	Status      string `json:"status" binding:"required"`
	Notes       string `json:"notes"`
	CompletedBy string `json:"completed_by"`
}

// PUT /api/actions/:id/status
func updateActionStatusHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "updateActionStatus")
		defer span.End()

		username, ok := requireSession(c)
		if !ok {
			return
		}

		actionId := c.Param("id")
		if err := utils.ValidateResourceId[models.ActionRecommendation](ctx, actionId); err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update action"})
			return
		}

		var input updateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
			return
		}
		status, err := models.ParseActionStatus(input.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		completedBy := input.CompletedBy
		if completedBy == "" && status == models.ActionStatusCompleted {
			completedBy = username
		}

		action, err := models.UpdateActionStatus(ctx, actionId, status, input.Notes, completedBy)
		if err != nil {
			if errors.Is(err, utils.ErrorRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, action)
	}
}

// GET /api/actions/export?format=&type=&status=
func exportActionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "exportActions")
		defer span.End()

		format := c.DefaultQuery("format", "csv")
		switch format {
		case "csv", "json", "xlsx":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "format must be one of csv, json, xlsx"})
			return
		}

		var actionType models.ActionType
		if v := c.Query("type"); v != "" {
			t, err := models.ParseActionType(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			actionType = t
		}
		status := models.ActionStatusPending
		if v := c.Query("status"); v != "" {
			s, err := models.ParseActionStatus(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			status = s
		}

		actions, err := models.GetActionsForExport(ctx, actionType, status)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "exportActions", "fetch", format, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export actions"})
			return
		}

		switch format {
		case "json":
			c.JSON(http.StatusOK, gin.H{
				"exportedAt": time.Now().UTC(),
				"count":      len(actions),
				"actions":    actions,
			})
		case "xlsx":
			data, err := reports.ActionsToExcel(actions)
			if err != nil {
				config.LogError(config.GetLogger(), "actionEngine", "exportActions", "excel", len(actions), err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export actions"})
				return
			}
			c.Header("Content-Disposition", `attachment; filename="action_recommendations.xlsx"`)
			c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		default:
			csv := engine.ActionsToCSV(actions)
			c.Header("Content-Disposition", `attachment; filename="action_recommendations.csv"`)
			c.Data(http.StatusOK, "text/csv", []byte(csv))
		}
	}
}

type batchExportInput struct {
	ActionIds []string `json:"action_ids" binding:"required"`
}

// POST /api/actions/batch-create-tasks
func batchExportTasksHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracer.Start(c.Request.Context(), "batchExportTasks")
		defer span.End()

		username, ok := requireSession(c)
		if !ok {
			return
		}

		var input batchExportInput
		if err := c.ShouldBindJSON(&input); err != nil || len(input.ActionIds) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "action_ids is required"})
			return
		}
		actionIds := utils.UniqueSlice(input.ActionIds)

		exported, err := models.BatchExportActions(ctx, actionIds)
		if err != nil {
			config.LogError(config.GetLogger(), "actionEngine", "batchExportTasks", "export", actionIds, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export actions"})
			return
		}

		// Archive a CSV snapshot of the exported batch (best-effort, gated
		// on EXPORT_BUCKET).
		if exported > 0 {
			actions, fetchErr := models.GetActionsForExport(ctx, "", models.ActionStatusExported)
			if fetchErr == nil {
				objectName := fmt.Sprintf("action-exports/%s.csv", time.Now().UTC().Format("20060102T150405Z"))
				if _, archiveErr := utils.ArchiveExport(ctx, objectName, "text/csv", []byte(engine.ActionsToCSV(actions))); archiveErr != nil {
					config.LogError(config.GetLogger(), "actionEngine", "batchExportTasks", "archive", objectName, archiveErr)
				}
			}

			correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
			if err := config.PublishActionEvent(ctx, config.ActionEventMessage{
				EventType:     "actions.exported",
				ActionIds:     actionIds,
				Count:         int(exported),
				OccurredAt:    time.Now().UTC(),
				CorrelationId: correlationId,
			}); err != nil {
				config.LogError(config.GetLogger(), "actionEngine", "batchExportTasks", "publish", actionIds, err)
			}
		}

		config.GetLogger().WithField("username", username).
			Info("exported ", exported, " action recommendations")

		c.JSON(http.StatusOK, gin.H{
			"requested": len(actionIds),
			"exported":  exported,
		})
	}
}
