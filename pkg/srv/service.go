package srv

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/mentoria/pkg/log"
)

const shutdownTimeout = 15 * time.Second

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

func StartServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for _, service := range services {
		go func(service Service) {
			if err := service.Start(ctx); err != nil {
				logger.Fatal().Err(err).Msgf("%s failed to start", serviceName(service))
			}
		}(service)
	}
}

// ShutdownServices blocks until ctx is done, then stops services in reverse
// start order. Each service gets a fresh deadline since ctx is already
// cancelled at that point.
func ShutdownServices(ctx context.Context, services []Service) {
	<-ctx.Done()
	StopServices(context.WithoutCancel(ctx), services)
}

// StopServices shuts services down in reverse order without waiting.
func StopServices(ctx context.Context, services []Service) {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msgf("%s failed to shutdown", serviceName(services[i]))
		}
	}
}

func serviceName(s Service) string {
	if named, ok := s.(fmt.Stringer); ok {
		return named.String()
	}
	return fmt.Sprintf("%T", s)
}
