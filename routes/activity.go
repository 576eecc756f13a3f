package routes

import (
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/calendar"
	"github.com/ayoub302/farm-sub001/i18n"
	"github.com/ayoub302/farm-sub001/models"
	"github.com/ayoub302/farm-sub001/storage"
	"github.com/ayoub302/farm-sub001/utils"
)

// ActivityHandler serves the public activity listing and the admin CRUD.
type ActivityHandler struct {
	DB    *gorm.DB
	Cache Cache
	Audit *utils.Recorder
	Log   *zap.Logger
	Loc   *time.Location
	Env   string
}

type ActivityInput struct {
	TitleFr       string     `json:"titleFr" validate:"required"`
	TitleAr       string     `json:"titleAr" validate:"required"`
	DescriptionFr string     `json:"descriptionFr"`
	DescriptionAr string     `json:"descriptionAr"`
	Date          time.Time  `json:"date" validate:"required"`
	EndDate       *time.Time `json:"endDate"`
	StartTime     string     `json:"startTime"`
	EndTime       string     `json:"endTime"`
	Category      string     `json:"category" validate:"required"`
	Location      string     `json:"location"`
	MaxCapacity   int        `json:"maxCapacity" validate:"min=0"`
	Status        string     `json:"status" validate:"omitempty,oneof=upcoming active completed cancelled"`
	ImageURL      string     `json:"imageURL"`
	Featured      bool       `json:"featured"`
	HarvestID     *uint      `json:"harvestID"`
}

// activityView is the public shape of an activity: bilingual text, category
// presentation and capacity, with dates pre-localized for both locales.
type activityView struct {
	ID          uint             `json:"id"`
	Title       models.Bilingual `json:"title"`
	Description models.Bilingual `json:"description"`
	Date        string           `json:"date"`
	DateLabel   models.Bilingual `json:"dateLabel"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime,omitempty"`
	Duration    models.Bilingual `json:"duration,omitempty"`
	Category    string           `json:"category"`
	Type        string           `json:"type"`
	Color       string           `json:"color"`
	Level       models.Bilingual `json:"level"`
	Location    string           `json:"location,omitempty"`
	MaxCapacity int              `json:"maxCapacity"`
	Status      string           `json:"status"`
	ImageURL    string           `json:"imageURL,omitempty"`
	Featured    bool             `json:"featured"`

	calendar.CapacityReport
}

func (h *ActivityHandler) view(act *models.Activity) activityView {
	local := act.Date.In(h.Loc)
	view := activityView{
		ID:          act.ID,
		Title:       act.Title(),
		Description: act.Description(),
		Date:        local.Format("2006-01-02"),
		DateLabel: models.Bilingual{
			Ar: i18n.LongDate(local, i18n.LocaleAr),
			Fr: i18n.LongDate(local, i18n.LocaleFr),
		},
		StartTime:      act.StartTime,
		EndTime:        act.EndTime,
		Category:       string(act.Category),
		Type:           act.Category.Tag(),
		Color:          act.Category.Color(),
		Level:          act.Category.Level(),
		Location:       act.Location,
		MaxCapacity:    act.MaxCapacity,
		Status:         act.Status,
		ImageURL:       act.ImageURL,
		Featured:       act.Featured,
		CapacityReport: calendar.Capacity(act.MaxCapacity, act.Bookings),
	}
	if view.StartTime == "" {
		view.StartTime = local.Format("15:04")
	}
	if act.EndDate != nil {
		hours := int(act.EndDate.Sub(act.Date).Hours())
		if hours > 0 {
			view.Duration = models.Bilingual{
				Ar: i18n.Duration(hours, i18n.LocaleAr),
				Fr: i18n.Duration(hours, i18n.LocaleFr),
			}
		}
		if view.EndTime == "" {
			view.EndTime = act.EndDate.In(h.Loc).Format("15:04")
		}
	}
	return view
}

// List is the public endpoint: future upcoming/active activities, optionally
// filtered by category or featured flag, featured first then soonest first.
func (h *ActivityHandler) List(ctx iris.Context) {
	today := time.Now().In(h.Loc)
	startOfDay := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, h.Loc)

	query := h.DB.
		Where("status IN ?", []string{models.ActivityUpcoming, models.ActivityActive}).
		Where("date >= ?", startOfDay).
		Preload("Bookings", "status = ?", models.BookingConfirmed).
		Order("featured DESC, date ASC")

	if category := ctx.URLParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if ctx.URLParam("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	if limit := ctx.URLParamIntDefault("limit", 0); limit > 0 {
		query = query.Limit(limit)
	}

	var activities []models.Activity
	if err := query.Find(&activities).Error; err != nil {
		h.Log.Error("activity list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	views := make([]activityView, 0, len(activities))
	for i := range activities {
		views = append(views, h.view(&activities[i]))
	}

	ctx.JSON(iris.Map{"success": true, "data": views})
}

// AdminList returns every activity, paginated, with optional status and
// category filters.
func (h *ActivityHandler) AdminList(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("per_page", 20)
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := h.DB.Model(&models.Activity{})
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if category := ctx.URLParam("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		h.Log.Error("activity count failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	var activities []models.Activity
	if err := query.
		Preload("Bookings").
		Order("date DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&activities).Error; err != nil {
		h.Log.Error("activity list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	utils.JSONPage(ctx, activities, page, perPage, total)
}

// AdminGet returns one activity with all its bookings.
func (h *ActivityHandler) AdminGet(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var activity models.Activity
	if err := h.DB.Preload("Bookings").First(&activity, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": activity})
}

// AdminCreate creates an activity.
func (h *ActivityHandler) AdminCreate(ctx iris.Context) {
	var input ActivityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	activity := models.Activity{
		TitleFr:       input.TitleFr,
		TitleAr:       input.TitleAr,
		DescriptionFr: input.DescriptionFr,
		DescriptionAr: input.DescriptionAr,
		Date:          input.Date,
		EndDate:       input.EndDate,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Category:      models.ActivityCategory(input.Category),
		Location:      input.Location,
		MaxCapacity:   input.MaxCapacity,
		Status:        input.Status,
		ImageURL:      input.ImageURL,
		Featured:      input.Featured,
		HarvestID:     input.HarvestID,
	}
	if activity.Status == "" {
		activity.Status = models.ActivityUpcoming
	}

	if err := h.DB.Create(&activity).Error; err != nil {
		h.Log.Error("activity create failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "create", "activities", activity, "")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": activity})
}

// AdminUpdate replaces the mutable fields of an activity.
func (h *ActivityHandler) AdminUpdate(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var activity models.Activity
	if err := h.DB.First(&activity, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input ActivityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := activity

	activity.TitleFr = input.TitleFr
	activity.TitleAr = input.TitleAr
	activity.DescriptionFr = input.DescriptionFr
	activity.DescriptionAr = input.DescriptionAr
	activity.Date = input.Date
	activity.EndDate = input.EndDate
	activity.StartTime = input.StartTime
	activity.EndTime = input.EndTime
	activity.Category = models.ActivityCategory(input.Category)
	activity.Location = input.Location
	activity.MaxCapacity = input.MaxCapacity
	activity.ImageURL = input.ImageURL
	activity.Featured = input.Featured
	activity.HarvestID = input.HarvestID
	if input.Status != "" {
		activity.Status = input.Status
	}

	if err := h.DB.Save(&activity).Error; err != nil {
		h.Log.Error("activity update failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "update", "activities", iris.Map{"before": before, "after": activity}, "")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.JSON(iris.Map{"success": true, "data": activity})
}

// AdminDelete removes an activity. Activities still referenced by bookings
// answer a constraint conflict instead of disappearing.
func (h *ActivityHandler) AdminDelete(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var activity models.Activity
	if err := h.DB.First(&activity, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if err := h.DB.Delete(&activity).Error; err != nil {
		if storage.IsForeignKeyViolation(err) {
			utils.CreateError(iris.StatusConflict, "conflict",
				"activity has bookings; remove or reassign them first", ctx)
			return
		}
		h.Log.Error("activity delete failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "delete", "activities", activity, "warning")
	h.Cache.InvalidateCalendar(ctx.Request().Context())

	ctx.JSON(iris.Map{"success": true, "message": "activity deleted"})
}
