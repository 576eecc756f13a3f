package routes

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
	"github.com/ayoub302/farm-sub001/storage"
	"github.com/ayoub302/farm-sub001/utils"
)

// HarvestHandler serves the public harvest schedule and the admin CRUD,
// including the cascading delete of a harvest's dependents.
type HarvestHandler struct {
	DB    *gorm.DB
	Cache Cache
	Audit *utils.Recorder
	Log   *zap.Logger
	Env   string
}

type HarvestInput struct {
	ProductFr      string     `json:"productFr" validate:"required"`
	ProductAr      string     `json:"productAr" validate:"required"`
	DescriptionFr  string     `json:"descriptionFr"`
	DescriptionAr  string     `json:"descriptionAr"`
	StatusFr       string     `json:"statusFr"`
	StatusAr       string     `json:"statusAr"`
	AvailabilityFr string     `json:"availabilityFr"`
	AvailabilityAr string     `json:"availabilityAr"`
	Icon           string     `json:"icon"`
	Season         string     `json:"season"`
	Year           int        `json:"year"`
	NextHarvest    *time.Time `json:"nextHarvest"`
	IsActive       bool       `json:"isActive"`
}

// List is the public endpoint: active harvests, soonest next harvest first.
func (h *HarvestHandler) List(ctx iris.Context) {
	var harvests []models.Harvest
	if err := h.DB.
		Where("is_active = ?", true).
		Order("next_harvest ASC").
		Preload("Products").
		Find(&harvests).Error; err != nil {
		h.Log.Error("harvest list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": harvests})
}

// AdminList returns every harvest with its dependents.
func (h *HarvestHandler) AdminList(ctx iris.Context) {
	var harvests []models.Harvest
	if err := h.DB.
		Order("year DESC, next_harvest ASC").
		Preload("Activities").
		Preload("Events").
		Preload("Products").
		Find(&harvests).Error; err != nil {
		h.Log.Error("harvest list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": harvests})
}

// AdminCreate creates a harvest record.
func (h *HarvestHandler) AdminCreate(ctx iris.Context) {
	var input HarvestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	harvest := models.Harvest{
		ProductFr:      input.ProductFr,
		ProductAr:      input.ProductAr,
		DescriptionFr:  input.DescriptionFr,
		DescriptionAr:  input.DescriptionAr,
		StatusFr:       input.StatusFr,
		StatusAr:       input.StatusAr,
		AvailabilityFr: input.AvailabilityFr,
		AvailabilityAr: input.AvailabilityAr,
		Icon:           input.Icon,
		Season:         input.Season,
		Year:           input.Year,
		NextHarvest:    input.NextHarvest,
		IsActive:       input.IsActive,
	}

	if err := h.DB.Create(&harvest).Error; err != nil {
		h.Log.Error("harvest create failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "create", "harvests", harvest, "")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": harvest})
}

// AdminUpdate replaces the mutable fields of a harvest.
func (h *HarvestHandler) AdminUpdate(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var harvest models.Harvest
	if err := h.DB.First(&harvest, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input HarvestInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	harvest.ProductFr = input.ProductFr
	harvest.ProductAr = input.ProductAr
	harvest.DescriptionFr = input.DescriptionFr
	harvest.DescriptionAr = input.DescriptionAr
	harvest.StatusFr = input.StatusFr
	harvest.StatusAr = input.StatusAr
	harvest.AvailabilityFr = input.AvailabilityFr
	harvest.AvailabilityAr = input.AvailabilityAr
	harvest.Icon = input.Icon
	harvest.Season = input.Season
	harvest.Year = input.Year
	harvest.NextHarvest = input.NextHarvest
	harvest.IsActive = input.IsActive

	if err := h.DB.Save(&harvest).Error; err != nil {
		h.Log.Error("harvest update failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "update", "harvests", harvest, "")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.JSON(iris.Map{"success": true, "data": harvest})
}

// AdminDelete removes a harvest and everything referencing it as one atomic
// unit. When the direct delete trips a referential constraint, the ordered
// manual fallback removes dependents first; a failure there is fatal.
func (h *HarvestHandler) AdminDelete(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var harvest models.Harvest
	if err := h.DB.First(&harvest, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Harvest{}, id).Error
	})

	if storage.IsForeignKeyViolation(err) {
		h.Log.Warn("harvest delete hit a constraint, running manual cascade", zap.Uint("id", id))
		err = h.deleteCascade(id)
	}
	if err != nil {
		h.Log.Error("harvest delete failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "delete", "harvests", harvest, "warning")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.JSON(iris.Map{"success": true, "message": "harvest deleted"})
}

// deleteCascade removes the harvest's dependents in dependency order inside
// one transaction: bookings, activities, calendar events, products, then the
// harvest itself.
func (h *HarvestHandler) deleteCascade(id uint) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		activityIDs := tx.Model(&models.Activity{}).Select("id").Where("harvest_id = ?", id)

		if err := tx.
			Where("harvest_id = ? OR activity_id IN (?)", id, activityIDs).
			Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Where("harvest_id = ?", id).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("harvest_id = ?", id).Delete(&models.CalendarEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("harvest_id = ?", id).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Harvest{}, id).Error
	})
}
