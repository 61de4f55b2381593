package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wbsplanner/internal/export"
	"wbsplanner/internal/i18n"
	"wbsplanner/internal/model"
	"wbsplanner/pkg/metrics"
)

type ProjectHandler struct {
	planner Planner
	logger  *zap.Logger
}

func NewProjectHandler(planner Planner, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{planner: planner, logger: logger}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.planner.ListProjects(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	p, err := h.planner.GetProject(c.Request.Context(), id)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var in model.ProjectCreate
	if !bind(c, h.logger, &in) {
		return
	}
	h.logger.Info("CreateProject request received", zap.String("name", in.Name))

	p, err := h.planner.CreateProject(c.Request.Context(), in)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	h.logger.Info("CreateProject: success", zap.Int("project_id", p.ID))
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in model.ProjectUpdate
	if !bind(c, h.logger, &in) {
		return
	}
	p, err := h.planner.UpdateProject(c.Request.Context(), id, in)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	h.logger.Info("UpdateProject: success", zap.Int("project_id", id))
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.planner.DeleteProject(c.Request.Context(), id); err != nil {
		fail(c, h.logger, "Project", err)
		return
	}
	h.logger.Info("DeleteProject: success", zap.Int("project_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
}

func (h *ProjectHandler) Statistics(c *gin.Context) {
	s, err := h.planner.Statistics(c.Request.Context())
	if err != nil {
		fail(c, h.logger, "Statistics", err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Export handles GET /projects/export?format=csv|excel|pdf&project_id=.
func (h *ProjectHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		detail(c, http.StatusBadRequest, "サポートされていないフォーマットです")
		return
	}

	var projectID *int
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			detail(c, http.StatusBadRequest, "invalid project_id")
			return
		}
		projectID = &id
	}
	h.logger.Info("Export request received",
		zap.String("format", string(format)),
		zap.Any("project_id", projectID),
	)

	rows, err := h.planner.ExportRows(c.Request.Context(), projectID)
	if err != nil {
		fail(c, h.logger, "Project", err)
		return
	}

	opts := export.Options{Locale: i18n.Parse(c.Query("locale")), Title: "Project report"}
	if projectID != nil {
		opts.Title = "Project report - " + rows[0].Name
	}
	doc, err := export.Render(format, rows, opts)
	if err != nil {
		fail(c, h.logger, "Project", fmt.Errorf("render %s export: %w", format, err))
		return
	}
	metrics.IncrementExport(string(format))

	c.Header("Content-Disposition", "attachment; filename="+doc.Filename)
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}
