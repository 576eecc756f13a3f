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

// BookingHandler serves the public reservation form and the admin booking
// management surface.
type BookingHandler struct {
	DB    *gorm.DB
	Cache Cache
	Audit *utils.Recorder
	Log   *zap.Logger
	Env   string
}

type BookingInput struct {
	ActivityID      *uint      `json:"activityID"`
	ClientName      string     `json:"clientName" validate:"required"`
	ClientEmail     string     `json:"clientEmail" validate:"required,email"`
	ClientPhone     string     `json:"clientPhone"`
	NumPeople       int        `json:"numPeople" validate:"required,min=1"`
	VisitDate       *time.Time `json:"visitDate"`
	VisitTime       string     `json:"visitTime"`
	Notes           string     `json:"notes"`
	SpecialRequests string     `json:"specialRequests"`
	Channel         string     `json:"channel"`
}

type BookingStatusInput struct {
	Status        string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=unpaid paid refunded"`
	PaymentMethod string `json:"paymentMethod"`
}

// Create takes a public reservation. Bookings start pending and only count
// against capacity once an operator confirms them.
func (h *BookingHandler) Create(ctx iris.Context) {
	var input BookingInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.ActivityID != nil {
		var activity models.Activity
		if err := h.DB.First(&activity, *input.ActivityID).Error; err != nil {
			utils.CreateError(iris.StatusNotFound, "not_found", "activity not found", ctx)
			return
		}
		if !activity.Bookable() {
			utils.CreateError(iris.StatusBadRequest, "not_bookable",
				"this activity no longer accepts reservations", ctx)
			return
		}
	}

	booking := models.Booking{
		ActivityID:      input.ActivityID,
		ClientName:      input.ClientName,
		ClientEmail:     input.ClientEmail,
		ClientPhone:     input.ClientPhone,
		NumPeople:       input.NumPeople,
		Status:          models.BookingPending,
		PaymentStatus:   models.PaymentUnpaid,
		VisitDate:       input.VisitDate,
		VisitTime:       input.VisitTime,
		Notes:           input.Notes,
		SpecialRequests: input.SpecialRequests,
		Channel:         input.Channel,
	}
	if booking.Channel == "" {
		booking.Channel = "web"
	}

	// The code has a unique index; retry on the unlikely collision.
	var err error
	for attempt := 0; attempt < 5; attempt++ {
		booking.Code = utils.GenerateBookingCode()
		if err = h.DB.Create(&booking).Error; err == nil || !storage.IsUniqueViolation(err) {
			break
		}
	}
	if err != nil {
		h.Log.Error("booking create failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"success": true,
		"message": "reservation received",
		"data":    iris.Map{"code": booking.Code, "status": booking.Status},
	})
}

// AdminList returns bookings, paginated, newest first, with optional status
// and activity filters.
func (h *BookingHandler) AdminList(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := h.DB.Model(&models.Booking{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if activityID := ctx.URLParamIntDefault("activityID", 0); activityID > 0 {
		query = query.Where("activity_id = ?", activityID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.Log.Error("booking count failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	var bookings []models.Booking
	if err := query.
		Preload("Activity").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&bookings).Error; err != nil {
		h.Log.Error("booking list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	utils.JSONPage(ctx, bookings, page, perPage, total)
}

// AdminUpdateStatus transitions a booking between pending, confirmed and
// cancelled and records payment changes.
func (h *BookingHandler) AdminUpdateStatus(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := h.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input BookingStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := booking.Status
	booking.Status = input.Status
	if input.PaymentStatus != "" {
		booking.PaymentStatus = input.PaymentStatus
	}
	if input.PaymentMethod != "" {
		booking.PaymentMethod = input.PaymentMethod
	}

	if err := h.DB.Save(&booking).Error; err != nil {
		h.Log.Error("booking update failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "update_status", "bookings", iris.Map{
		"code": booking.Code,
		"from": before,
		"to":   booking.Status,
	}, "")

	// A status change against an activity moves its remaining capacity on
	// the calendar.
	if booking.ActivityID != nil {
		h.Cache.InvalidateCalendar(ctx.Request().Context())
	}

	ctx.JSON(iris.Map{"success": true, "data": booking})
}

// AdminDelete removes a booking outright.
func (h *BookingHandler) AdminDelete(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var booking models.Booking
	if err := h.DB.First(&booking, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := h.DB.Delete(&booking).Error; err != nil {
		h.Log.Error("booking delete failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "delete", "bookings", iris.Map{"code": booking.Code}, "warning")

	if booking.ActivityID != nil {
		h.Cache.InvalidateCalendar(ctx.Request().Context())
	}

	ctx.JSON(iris.Map{"success": true, "message": "booking deleted"})
}
