package srv

import (
	"context"
	"fmt"

	"github.com/sandevgo/mentoria/pkg/log"
)

// cleanupService releases one resource (database, client) when services stop.
type cleanupService struct {
	name    string
	cleanup func() error
}

// NewCleanup wraps fn as a Service that does nothing on Start and runs fn on
// Shutdown. name appears in logs and errors.
func NewCleanup(name string, fn func() error) Service {
	return &cleanupService{name: name, cleanup: fn}
}

func (c *cleanupService) Start(ctx context.Context) error {
	return nil
}

func (c *cleanupService) Shutdown(ctx context.Context) error {
	if c.cleanup == nil {
		return nil
	}
	if err := c.cleanup(); err != nil {
		return fmt.Errorf("release %s: %w", c.name, err)
	}
	log.FromCtx(ctx).Debug().Str("resource", c.name).Msg("released")
	return nil
}

func (c *cleanupService) String() string {
	return "cleanup(" + c.name + ")"
}
