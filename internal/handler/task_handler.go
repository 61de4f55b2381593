package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

type TaskHandler struct {
	planner Planner
	logger  *zap.Logger
}

func NewTaskHandler(planner Planner, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{planner: planner, logger: logger}
}

// ListByProject handles GET /tasks/project/:projectId.
func (h *TaskHandler) ListByProject(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	tasks, err := h.planner.ListTasks(c.Request.Context(), projectID)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	h.logger.Info("ListTasks: success",
		zap.Int("project_id", projectID),
		zap.Int("task_count", len(tasks)),
	)
	c.JSON(http.StatusOK, tasks)
}

// Gantt handles GET /tasks/project/:projectId/gantt.
func (h *TaskHandler) Gantt(c *gin.Context) {
	projectID, ok := pathID(c, "projectId")
	if !ok {
		return
	}
	g, err := h.planner.Gantt(c.Request.Context(), projectID)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.planner.GetTask(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, "Task", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var in model.TaskCreate
	if !bind(c, h.logger, &in) {
		return
	}
	h.logger.Info("CreateTask request received",
		zap.Int("project_id", in.ProjectID),
		zap.String("name", in.Name),
	)
	t, err := h.planner.CreateTask(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, "Task", err)
		return
	}
	h.logger.Info("CreateTask: success", zap.Int("task_id", t.ID))
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in model.TaskUpdate
	if !bind(c, h.logger, &in) {
		return
	}
	t, err := h.planner.UpdateTask(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, "Task", err)
		return
	}
	h.logger.Info("UpdateTask: success", zap.Int("task_id", id))
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.planner.DeleteTask(c.Request.Context(), id); err != nil {
		fail(c, h.logger, "Task", err)
		return
	}
	h.logger.Info("DeleteTask: success", zap.Int("task_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
