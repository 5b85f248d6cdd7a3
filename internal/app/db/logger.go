package db

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agora/internal/pkg/logx"
)

// SlowQueryThreshold is the duration above which GORM reports a query as slow.
const SlowQueryThreshold = 200 * time.Millisecond

// gormWriter forwards GORM's printf-style output into the global zerolog logger.
type gormWriter struct{}

func (gormWriter) Printf(format string, args ...any) {
	msg := strings.TrimSpace(fmt.Sprintf(format, args...))

	event := logx.Logger().Debug()
	if strings.Contains(msg, "SLOW SQL") || strings.Contains(strings.ToLower(msg), "error") {
		event = logx.Logger().Warn()
	}

	event.Str("component", "gorm").Msg(msg)
}

// gooseLogger routes migration progress into logx.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) {
	logx.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (gooseLogger) Fatalf(format string, v ...any) {
	logx.Fatal(fmt.Errorf(format, v...), "goose migration failed")
}

// NewGormConfig returns the GORM settings shared by production and tests.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func NewGormConfig(debug bool) *gorm.Config {
	level := logger.Warn
	if debug {
		level = logger.Info
	}

	return &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormWriter{}, logger.Config{
			SlowThreshold:             SlowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}
