// internal/interfaces/http/handlers/response.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError writes the {"detail": ...} error body
func respondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// respondInternal logs err against the request and answers with a
// generic 500 body
func respondInternal(c *gin.Context, logger *logrus.Logger, status int, detail string, err error) {
	logger.WithFields(logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	}).WithError(err).Error(detail)
	_ = c.Error(err)
	respondError(c, status, detail)
}
