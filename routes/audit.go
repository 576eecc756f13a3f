package routes

import (
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
	"github.com/ayoub302/farm-sub001/utils"
)

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	DB  *gorm.DB
	Log *zap.Logger
	Env string
}

// AdminList returns audit entries, newest first, optionally filtered by
// module.
func (h *AuditHandler) AdminList(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 50)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	query := h.DB.Model(&models.AuditLog{})
	if module := ctx.URLParam("module"); module != "" {
		query = query.Where("module = ?", module)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.Log.Error("audit count failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	var entries []models.AuditLog
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&entries).Error; err != nil {
		h.Log.Error("audit list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	utils.JSONPage(ctx, entries, page, perPage, total)
}
