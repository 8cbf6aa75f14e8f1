package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

func isLoopback(ip string) bool {
	return ip == "::1" || ip == "127.0.0.1"
}

// ClientIP resolves the caller address used when a node registers.
// Proxy headers win over the socket address, loopback entries are skipped.
func ClientIP(c *fiber.Ctx) string {
	if forwardedFor := c.Get(fiber.HeaderXForwardedFor); forwardedFor != "" {
		first := strings.TrimSpace(strings.Split(forwardedFor, ",")[0])
		if first != "" && !isLoopback(first) {
			return first
		}
	}

	if realIP := strings.TrimSpace(c.Get("X-Real-IP")); realIP != "" && !isLoopback(realIP) {
		return realIP
	}

	ip := strings.TrimPrefix(c.Context().RemoteIP().String(), "::ffff:")
	switch ip {
	case "", "<nil>":
		return "127.0.0.1"
	case "::1":
		return "127.0.0.1"
	}
	return ip
}
