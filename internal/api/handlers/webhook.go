package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/orderflow/internal/domain"
	"github.com/jafarshop/orderflow/internal/service"
)

// ResultArchiver persists processing results. A nil archiver disables
// persistence entirely; archive failures must never fail the request.
type ResultArchiver interface {
	Save(ctx context.Context, result *domain.ProcessingResult) error
}

// HandleOrderCreated handles POST /webhook/order-created
func HandleOrderCreated(processor *service.Processor, archive ResultArchiver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order domain.Order
		if err := c.ShouldBindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		result := processor.Process(c.Request.Context(), order)

		if archive != nil {
			if err := archive.Save(c.Request.Context(), &result); err != nil {
				logger.Warn("Failed to archive processing result",
					zap.String("run_id", result.RunID),
					zap.Error(err),
				)
			}
		}

		c.JSON(http.StatusOK, result)
	}
}
