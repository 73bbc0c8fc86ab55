package main

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"
)

type contextKey string

const commandIDKey contextKey = "command_id"

func (c *Console) withLogging(name string, next handler) handler {
	return func(ctx context.Context, args []string) error {
		id := uuid.Must(uuid.NewV4()).String()
		ctx = context.WithValue(ctx, commandIDKey, id)
		start := time.Now()
		err := next(ctx, args)
		fields := []zap.Field{
			zap.String("command", name),
			zap.Int("args", len(args)),
			zap.Duration("duration", time.Since(start)),
			zap.String("command_id", id),
		}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		c.cfg.Logger.Debug("console_command", fields...)
		return err
	}
}

func (c *Console) withMetricsFlush(next handler) handler {
	return func(ctx context.Context, args []string) error {
		err := next(ctx, args)
		if c.cfg.Metrics != nil {
			if flushErr := c.cfg.Metrics.Flush(); flushErr != nil {
				c.cfg.Logger.Warn("failed to write metrics textfile",
					zap.Error(flushErr),
					zap.String("command_id", commandIDFromContext(ctx)),
				)
			}
		}
		return err
	}
}

func commandIDFromContext(ctx context.Context) string {
	if value, ok := ctx.Value(commandIDKey).(string); ok {
		return value
	}
	return ""
}
