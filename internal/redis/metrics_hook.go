package redis

import (
	"context"
	"errors"
	"net"

	"github.com/jetsaguirel/simple-blog/internal/metrics"
	goredis "github.com/redis/go-redis/v9"
)

// MetricsHook implements redis.Hook to count every Redis command by outcome.
type MetricsHook struct{}

var _ goredis.Hook = (*MetricsHook)(nil)

func (h *MetricsHook) DialHook(next goredis.DialHook) goredis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		if err != nil {
			metrics.RedisOpsTotal.WithLabelValues("dial", "error").Inc()
		}
		return conn, err
	}
}

func (h *MetricsHook) ProcessHook(next goredis.ProcessHook) goredis.ProcessHook {
	return func(ctx context.Context, cmd goredis.Cmder) error {
		err := next(ctx, cmd)

		status := "success"
		if err != nil && !errors.Is(err, goredis.Nil) {
			status = "error"
		}
		metrics.RedisOpsTotal.WithLabelValues(cmd.Name(), status).Inc()

		return err
	}
}

func (h *MetricsHook) ProcessPipelineHook(next goredis.ProcessPipelineHook) goredis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []goredis.Cmder) error {
		err := next(ctx, cmds)

		status := "success"
		if err != nil {
			status = "error"
		}
		metrics.RedisOpsTotal.WithLabelValues("pipeline", status).Inc()

		return err
	}
}
