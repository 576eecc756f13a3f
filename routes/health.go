package routes

import (
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/storage"
)

// HealthHandler reports service and database liveness.
type HealthHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// Get answers 200 when the database responds, 503 otherwise.
func (h *HealthHandler) Get(ctx iris.Context) {
	if err := storage.Ping(h.DB); err != nil {
		h.Log.Error("health check failed", zap.Error(err))
		ctx.StatusCode(iris.StatusServiceUnavailable)
		ctx.JSON(iris.Map{"status": "degraded", "database": "unreachable"})
		return
	}
	ctx.JSON(iris.Map{"status": "ok"})
}
