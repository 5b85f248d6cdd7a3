package forum

import (
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"agora/internal/pkg/logx"
)

// Service implements every forum store on top of a single GORM handle.
// It keeps no state besides the handle, so one instance serves all requests.
type Service struct {
	db *gorm.DB

	// structured logger with forum context.
	logger zerolog.Logger
}

// NewService constructs a Service backed by db.
func NewService(db *gorm.DB) *Service {
	return &Service{
		db:     db,
		logger: logx.Logger().With().Str("component", "forum").Logger(),
	}
}
