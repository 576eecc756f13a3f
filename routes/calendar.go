package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/ayoub302/farm-sub001/calendar"
	"github.com/ayoub302/farm-sub001/utils"
)

// Cache holds rendered calendar month payloads and drops them after admin
// writes that change what the calendar shows. *storage.Cache satisfies it,
// including its nil no-op form.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte)
	InvalidateCalendar(ctx context.Context)
}

// CalendarHandler serves the public month calendar.
type CalendarHandler struct {
	Aggregator *calendar.Aggregator
	Cache      Cache
	Log        *zap.Logger
	Loc        *time.Location
	Env        string
}

// Get aggregates one month. Missing month/year default to the current one in
// farm-local time; cached payloads are served as-is.
func (h *CalendarHandler) Get(ctx iris.Context) {
	month := ctx.URLParamIntDefault("month", 0)
	year := ctx.URLParamIntDefault("year", 0)

	if month < 0 || month > 12 || year < 0 {
		utils.CreateError(iris.StatusBadRequest, "bad_request",
			"month must be 1-12 and year a positive number", ctx)
		return
	}

	now := time.Now().In(h.Loc)
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}

	key := fmt.Sprintf("calendar:%d-%d", year, month)
	if payload, ok := h.Cache.Get(ctx.Request().Context(), key); ok {
		ctx.ContentType("application/json")
		ctx.Write(payload)
		return
	}

	result, err := h.Aggregator.Aggregate(ctx.Request().Context(), month, year)
	if err != nil {
		h.Log.Error("calendar aggregation failed",
			zap.Int("month", month), zap.Int("year", year), zap.Error(err))
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	payload, err := json.Marshal(iris.Map{"success": true, "data": result})
	if err != nil {
		utils.FailInternal(ctx, h.Env, err)
		return
	}

	h.Cache.Set(ctx.Request().Context(), key, payload)
	ctx.ContentType("application/json")
	ctx.Write(payload)
}
