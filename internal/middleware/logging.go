// Package middleware provides cross-cutting HTTP middleware for the API.
package middleware

import (
	"time"

	"notewall/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// RequestLogger returns a Fiber middleware logging every request through zap.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Duration("latency", latency),
			zap.String("user_agent", c.Get("User-Agent")),
		}

		if uid := c.Locals("userID"); uid != nil {
			fields = append(fields, zap.Any("user_id", uid))
		}
		if rid := c.Locals("requestid"); rid != nil {
			fields = append(fields, zap.Any("request_id", rid))
		}

		if err != nil {
			fields = append(fields, zap.String("error", err.Error()))
			logger.L.Error("request failed", fields...)
		} else {
			logger.L.Info("request processed", fields...)
		}

		return err
	}
}
