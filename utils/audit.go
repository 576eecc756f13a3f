package utils

import (
	"encoding/json"
	"net"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ayoub302/farm-sub001/auth"
	"github.com/ayoub302/farm-sub001/models"
)

// Recorder writes operator actions to the audit trail. Failures are logged
// and swallowed; auditing never blocks the primary operation.
type Recorder struct {
	DB  *gorm.DB
	Log *zap.Logger
}

// NewRecorder builds an audit recorder over db.
func NewRecorder(db *gorm.DB, log *zap.Logger) *Recorder {
	return &Recorder{DB: db, Log: log}
}

// Record persists one action. The actor is taken from the verified identity
// stored on the request; severity defaults to "info".
func (r *Recorder) Record(ctx iris.Context, action, module string, details interface{}, severity string) {
	if r == nil || r.DB == nil {
		return
	}
	if severity == "" {
		severity = "info"
	}

	var ident auth.Identity
	if id, ok := auth.IdentityFromCtx(ctx); ok {
		ident = id
	}

	payload := datatypes.JSON("{}")
	if details != nil {
		if b, err := json.Marshal(details); err == nil {
			payload = datatypes.JSON(b)
		}
	}

	entry := models.AuditLog{
		Action:     action,
		Module:     module,
		ActorID:    ident.Subject,
		ActorEmail: ident.Email,
		Details:    payload,
		Severity:   severity,
		IPAddress:  clientIP(ctx),
	}
	if err := r.DB.Create(&entry).Error; err != nil {
		r.Log.Warn("audit write failed",
			zap.String("action", action),
			zap.String("module", module),
			zap.Error(err))
	}
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
