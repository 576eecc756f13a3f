package routes

import (
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/models"
	"github.com/ayoub302/farm-sub001/storage"
	"github.com/ayoub302/farm-sub001/utils"
)

// GalleryHandler serves the public gallery and the admin media management.
type GalleryHandler struct {
	DB    *gorm.DB
	Media *storage.Cloudinary
	Audit *utils.Recorder
	Log   *zap.Logger
	Env   string
}

type GalleryInput struct {
	Image        string `json:"image" validate:"required"`
	ThumbnailURL string `json:"thumbnailURL"`
	MediaType    string `json:"mediaType" validate:"omitempty,oneof=image video"`
	CaptionFr    string `json:"captionFr"`
	CaptionAr    string `json:"captionAr"`
}

type GalleryStatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}

// List is the public endpoint: published items only, newest publication
// first.
func (h *GalleryHandler) List(ctx iris.Context) {
	var items []models.GalleryItem
	if err := h.DB.
		Where("status = ?", models.GalleryPublished).
		Order("published_at DESC").
		Find(&items).Error; err != nil {
		h.Log.Error("gallery list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": items})
}

// AdminList returns gallery items in every lifecycle status.
func (h *GalleryHandler) AdminList(ctx iris.Context) {
	query := h.DB.Order("created_at DESC")
	if status := ctx.URLParam("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var items []models.GalleryItem
	if err := query.Find(&items).Error; err != nil {
		h.Log.Error("gallery list failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	ctx.JSON(iris.Map{"success": true, "data": items})
}

// AdminCreate uploads a base64 media payload to the asset service and stores
// the resulting item as a draft.
func (h *GalleryHandler) AdminCreate(ctx iris.Context) {
	var input GalleryInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	mediaType := input.MediaType
	if mediaType == "" {
		mediaType = "image"
	}

	publicID := uuid.NewString()
	url, err := h.Media.UploadBase64(ctx.Request().Context(), input.Image, publicID, mediaType)
	if err != nil {
		h.Log.Error("gallery upload failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	item := models.GalleryItem{
		URL:          url,
		ThumbnailURL: input.ThumbnailURL,
		PublicID:     publicID,
		MediaType:    mediaType,
		CaptionFr:    input.CaptionFr,
		CaptionAr:    input.CaptionAr,
		Status:       models.GalleryDraft,
	}

	if err := h.DB.Create(&item).Error; err != nil {
		h.Log.Error("gallery create failed", zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "create", "gallery", iris.Map{"id": item.ID, "publicID": publicID}, "")

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{"success": true, "data": item})
}

// AdminUpdateStatus moves an item through its lifecycle, keeping the
// publishedAt/archivedAt timestamps mutually exclusive.
func (h *GalleryHandler) AdminUpdateStatus(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var item models.GalleryItem
	if err := h.DB.First(&item, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var input GalleryStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	before := item.Status
	if err := item.ApplyStatus(input.Status, time.Now()); err != nil {
		utils.CreateError(iris.StatusBadRequest, "bad_request", err.Error(), ctx)
		return
	}

	if err := h.DB.Save(&item).Error; err != nil {
		h.Log.Error("gallery update failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "update_status", "gallery", iris.Map{
		"id":   item.ID,
		"from": before,
		"to":   item.Status,
	}, "")

	ctx.JSON(iris.Map{"success": true, "data": item})
}

// AdminDelete removes the stored asset and the database row. When the asset
// identifier was never stored it is derived from the delivery URL. A failed
// asset deletion is logged but does not keep the row alive.
func (h *GalleryHandler) AdminDelete(ctx iris.Context) {
	id := ctx.Params().GetUintDefault("id", 0)

	var item models.GalleryItem
	if err := h.DB.First(&item, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	publicID := item.PublicID
	if publicID == "" {
		publicID = storage.PublicIDFromURL(item.URL)
	}
	if publicID != "" {
		if err := h.Media.Destroy(ctx.Request().Context(), publicID, item.MediaType); err != nil {
			h.Log.Warn("asset deletion failed, removing database row anyway",
				zap.Uint("id", id), zap.String("publicID", publicID), zap.Error(err))
		}
	}

	if err := h.DB.Delete(&item).Error; err != nil {
		h.Log.Error("gallery delete failed", zap.Uint("id", id), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Audit.Record(ctx, "delete", "gallery", iris.Map{"id": item.ID, "publicID": publicID}, "warning")

	ctx.JSON(iris.Map{"success": true, "message": "gallery item deleted"})
}
