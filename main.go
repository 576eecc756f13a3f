package main

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/ayoub302/farm-sub001/auth"
	"github.com/ayoub302/farm-sub001/calendar"
	"github.com/ayoub302/farm-sub001/config"
	"github.com/ayoub302/farm-sub001/pkg/logger"
	"github.com/ayoub302/farm-sub001/routes"
	"github.com/ayoub302/farm-sub001/services"
	"github.com/ayoub302/farm-sub001/storage"
	"github.com/ayoub302/farm-sub001/utils"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal("invalid timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	db, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	cache := storage.NewCache(cfg.Redis.Addr, log.Named("cache"))
	media := storage.NewCloudinary(storage.CloudinaryConfig(cfg.Cloudinary), log.Named("cloudinary"))

	verifier, err := auth.NewVerifier(auth.VerifierConfig{
		JWKSURL:     cfg.Identity.JWKSURL,
		Issuer:      cfg.Identity.Issuer,
		Audience:    cfg.Identity.Audience,
		UserInfoURL: cfg.Identity.UserInfoURL,
	}, log.Named("auth"))
	if err != nil {
		log.Fatal("failed to initialize identity verifier", zap.Error(err))
	}

	guard := auth.NewGuard(verifier, cfg.Identity.AdminEmails, cfg.Environment, log.Named("auth"))
	audit := utils.NewRecorder(db, log.Named("audit"))
	aggregator := calendar.New(storage.NewCalendarStore(db), loc, log.Named("calendar"))

	activityH := &routes.ActivityHandler{DB: db, Cache: cache, Audit: audit, Log: log.Named("activities"), Loc: loc, Env: cfg.Environment}
	bookingH := &routes.BookingHandler{DB: db, Cache: cache, Audit: audit, Log: log.Named("bookings"), Env: cfg.Environment}
	eventH := &routes.EventHandler{DB: db, Cache: cache, Audit: audit, Log: log.Named("events"), Env: cfg.Environment}
	calendarH := &routes.CalendarHandler{Aggregator: aggregator, Cache: cache, Log: log.Named("calendar"), Loc: loc, Env: cfg.Environment}
	harvestH := &routes.HarvestHandler{DB: db, Cache: cache, Audit: audit, Log: log.Named("harvests"), Env: cfg.Environment}
	galleryH := &routes.GalleryHandler{DB: db, Media: media, Audit: audit, Log: log.Named("gallery"), Env: cfg.Environment}
	auditH := &routes.AuditHandler{DB: db, Log: log.Named("audit"), Env: cfg.Environment}
	healthH := &routes.HealthHandler{DB: db, Log: log.Named("health")}

	sched := services.NewScheduler(db, loc, log.Named("scheduler"))
	sched.Start()

	app := iris.New()
	app.Validator = validator.New()

	// CORS for the public site and the admin dashboard.
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	api := app.Party("/api")
	{
		api.Get("/health", healthH.Get)
		api.Get("/activities", activityH.List)
		api.Get("/calendar", calendarH.Get)
		api.Get("/harvests", harvestH.List)
		api.Get("/gallery", galleryH.List)
		api.Post("/bookings", bookingH.Create)
	}

	admin := api.Party("/admin", guard.RequireAdmin)
	{
		admin.Get("/activities", activityH.AdminList)
		admin.Get("/activities/{id:uint}", activityH.AdminGet)
		admin.Post("/activities", activityH.AdminCreate)
		admin.Put("/activities/{id:uint}", activityH.AdminUpdate)
		admin.Delete("/activities/{id:uint}", activityH.AdminDelete)

		admin.Get("/bookings", bookingH.AdminList)
		admin.Patch("/bookings/{id:uint}", bookingH.AdminUpdateStatus)
		admin.Delete("/bookings/{id:uint}", bookingH.AdminDelete)

		admin.Get("/events", eventH.AdminList)
		admin.Post("/events", eventH.AdminCreate)
		admin.Delete("/events/{id:uint}", eventH.AdminDelete)

		admin.Get("/harvests", harvestH.AdminList)
		admin.Post("/harvests", harvestH.AdminCreate)
		admin.Put("/harvests/{id:uint}", harvestH.AdminUpdate)
		admin.Delete("/harvests/{id:uint}", harvestH.AdminDelete)

		admin.Get("/gallery", galleryH.AdminList)
		admin.Post("/gallery", galleryH.AdminCreate)
		admin.Patch("/gallery/{id:uint}", galleryH.AdminUpdateStatus)
		admin.Delete("/gallery/{id:uint}", galleryH.AdminDelete)

		admin.Get("/audit", auditH.AdminList)
	}

	iris.RegisterOnInterrupt(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		sched.Stop()
		verifier.Close()
		if err := cache.Close(); err != nil {
			log.Warn("closing cache", zap.Error(err))
		}
		if err := storage.Close(db); err != nil {
			log.Warn("closing database", zap.Error(err))
		}
		_ = app.Shutdown(shutdownCtx)
	})

	log.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("env", cfg.Environment))
	if err := app.Listen(":"+cfg.Server.Port, iris.WithoutInterruptHandler); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
