package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wbsplanner/internal/service"
	"wbsplanner/pkg/rbac"
)

// detail writes the {"detail": ...} error body every endpoint uses.
func detail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": msg})
}

// fail maps service errors onto HTTP statuses. entity names the resource in 404s.
func fail(c *gin.Context, logger *zap.Logger, entity string, err error) {
	var (
		invalid *service.InvalidInputError
		denied  *rbac.PermissionDeniedError
	)
	switch {
	case errors.As(err, &invalid):
		detail(c, http.StatusBadRequest, invalid.Error())
	case errors.As(err, &denied):
		detail(c, http.StatusForbidden, "Not enough permissions")
	case errors.Is(err, service.ErrNotFound):
		detail(c, http.StatusNotFound, entity+" not found")
	case errors.Is(err, service.ErrSelfDependency):
		detail(c, http.StatusBadRequest, "Cannot create dependency to itself")
	case errors.Is(err, service.ErrDuplicateDep):
		detail(c, http.StatusBadRequest, "Dependency already exists between these tasks")
	case errors.Is(err, service.ErrTasksMissing):
		detail(c, http.StatusBadRequest, "One or both tasks do not exist")
	case errors.Is(err, service.ErrInvalidCredential):
		detail(c, http.StatusUnauthorized, "Incorrect username or password")
	case errors.Is(err, service.ErrInactiveUser):
		detail(c, http.StatusBadRequest, "Inactive user")
	case errors.Is(err, service.ErrNothingToExport):
		detail(c, http.StatusNotFound, "エクスポートするデータがありません")
	default:
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		detail(c, http.StatusInternalServerError, "Internal server error")
	}
}

// pathID parses an integer path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		detail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}

func bind(c *gin.Context, logger *zap.Logger, out any) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		logger.Warn("Invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		detail(c, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
