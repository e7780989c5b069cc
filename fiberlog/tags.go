package fiberlog

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid     = "pid"
	TagStatus  = "status"
	TagLatency = "latency"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagBody    = "body"
	TagResBody = "res_body"
	RequestID  = "request_id"
)

// FuncTag is function to get value for tag
type FuncTag func(c *fiber.Ctx, d *data) any

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	m := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		switch tag {
		case TagPid:
			m[TagPid] = func(c *fiber.Ctx, d *data) any { return d.pid }
		case TagStatus:
			m[TagStatus] = func(c *fiber.Ctx, d *data) any { return c.Response().StatusCode() }
		case TagLatency:
			m[TagLatency] = func(c *fiber.Ctx, d *data) any { return d.end.Sub(d.start).String() }
		case TagMethod:
			m[TagMethod] = func(c *fiber.Ctx, d *data) any { return c.Method() }
		case TagPath:
			m[TagPath] = func(c *fiber.Ctx, d *data) any { return c.Path() }
		case TagIP:
			m[TagIP] = func(c *fiber.Ctx, d *data) any { return c.IP() }
		case TagBody:
			m[TagBody] = func(c *fiber.Ctx, d *data) any { return string(c.Body()) }
		case TagResBody:
			m[TagResBody] = func(c *fiber.Ctx, d *data) any { return string(c.Response().Body()) }
		case RequestID:
			m[RequestID] = func(c *fiber.Ctx, d *data) any { return c.GetRespHeader(fiber.HeaderXRequestID) }
		}
	}
	return m
}
