package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

type DependencyHandler struct {
	planner Planner
	logger  *zap.Logger
}

func NewDependencyHandler(planner Planner, logger *zap.Logger) *DependencyHandler {
	return &DependencyHandler{planner: planner, logger: logger}
}

// ListByProject handles GET /tasks/project/:projectId/dependencies.
func (h *DependencyHandler) ListByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	deps, err := h.planner.ListDependencies(c.Request.Context(), projectID)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	c.JSON(http.StatusOK, deps)
}

// Create handles POST /tasks/dependencies.
func (h *DependencyHandler) Create(c *gin.Context) {
	var in model.DependencyCreate
	if !bind(c, h.logger, &in) {
		return
	}
	h.logger.Info("CreateDependency request received",
		zap.Int("predecessor_id", in.PredecessorID),
		zap.Int("successor_id", in.SuccessorID),
		zap.String("type", string(in.DependencyType)),
		zap.Int("lag_days", in.LagDays),
	)
	d, err := h.planner.CreateDependency(c.Request.Context(), in)
	if err != nil {
		h.logger.Warn("CreateDependency rejected", zap.Error(err))
		fail(c, h.logger, "Dependency", err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// Delete handles DELETE /tasks/dependencies/:id.
func (h *DependencyHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.planner.DeleteDependency(c.Request.Context(), id); err != nil {
		fail(c, h.logger, "Dependency", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Dependency deleted successfully"})
}
