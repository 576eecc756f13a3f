package routes

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
	"github.com/ayoub302/farm-sub001/utils"
)

// EventHandler manages the calendar annotations shown on the public month
// view. Events are created and removed by operators; the public only sees
// them through the calendar aggregation.
type EventHandler struct {
	DB    *gorm.DB
	Cache Cache
	Audit *utils.Recorder
	Log   *zap.Logger
	Env   string
}

type EventInput struct {
	TitleFr       string     `json:"titleFr" validate:"required"`
	TitleAr       string     `json:"titleAr" validate:"required"`
	DescriptionFr string     `json:"descriptionFr"`
	DescriptionAr string     `json:"descriptionAr"`
	StartDate     time.Time  `json:"startDate" validate:"required"`
	EndDate       *time.Time `json:"endDate"`
	Type          string     `json:"type"`
	Color         string     `json:"color"`
	IsPublic      bool       `json:"isPublic"`
	HarvestID     *uint      `json:"harvestID"`
}

// AdminList returns every event, newest start date first.
func (h *EventHandler) AdminList(ctx iris.Context) {
	var events []models.CalendarEvent
	if err := h.DB.Order("start_date DESC").Find(&events).Error; err != nil {
		h.Log.Error("event list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": events})
}

// AdminCreate creates a calendar event.
func (h *EventHandler) AdminCreate(ctx iris.Context) {
	var input EventInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	event := models.CalendarEvent{
		TitleFr:       input.TitleFr,
		TitleAr:       input.TitleAr,
		DescriptionFr: input.DescriptionFr,
		DescriptionAr: input.DescriptionAr,
		StartDate:     input.StartDate,
		EndDate:       input.EndDate,
		Type:          input.Type,
		Color:         input.Color,
		IsPublic:      input.IsPublic,
		HarvestID:     input.HarvestID,
	}

	if err := h.DB.Create(&event).Error; err != nil {
		h.Log.Error("event create failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "create", "events", event, "")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": event})
}

// AdminDelete removes a calendar event.
func (h *EventHandler) AdminDelete(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var event models.CalendarEvent
	if err := h.DB.First(&event, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := h.DB.Delete(&event).Error; err != nil {
		h.Log.Error("event delete failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "delete", "events", event, "warning")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.JSON(iris.Map{"success": true, "message": "event deleted"})
}
