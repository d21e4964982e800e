package server

import (
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"

	"github.com/signalytics/pokedex/internal/auth"
	"github.com/signalytics/pokedex/internal/config"
)

// Server is the explicitly constructed context object threaded through the
// router to every handler. It is built once at startup and closed on
// shutdown; handlers never reach for process-wide state.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// DB is the document-store handle for the server.
	DB *gorm.DB

	// Verifier resolves caller identity from bearer credentials.
	Verifier auth.Verifier

	// Logger is the logger for the server.
	Logger hclog.Logger
}

// Close releases the server's long-lived resources.
func (s Server) Close() error {
	if s.DB == nil {
		return nil
	}
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
