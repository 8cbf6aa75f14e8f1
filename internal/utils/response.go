package utils

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/types"
)

const (
	DefaultSuccessMessage = "操作成功"
	DefaultErrorMessage   = "操作失败"
	InternalErrorMessage  = "服务器内部错误"
)

// Envelope is the body shape of every response
type Envelope struct {
	Code      int         `json:"code"`
	Data      interface{} `json:"data"`
	Message   string      `json:"message"`
	Timestamp int64       `json:"timestamp"`
}

// OK sends a 200 envelope. An empty message uses the default success text.
func OK(c *fiber.Ctx, data interface{}, message string) error {
	if message == "" {
		message = DefaultSuccessMessage
	}
	return c.Status(fiber.StatusOK).JSON(Envelope{
		Code:      fiber.StatusOK,
		Data:      data,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Fail sends an error envelope with data set to null
func Fail(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = DefaultErrorMessage
	}
	return c.Status(status).JSON(Envelope{
		Code:      status,
		Data:      nil,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// FailFrom maps typed errors to their status; anything else is a 500 carrying
// the error text, or a generic message when hideInternal is set.
func FailFrom(c *fiber.Ctx, err error, hideInternal bool) error {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return Fail(c, ce.Code, ce.Message)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Fail(c, fe.Code, fe.Message)
	}

	if hideInternal {
		return Fail(c, fiber.StatusInternalServerError, InternalErrorMessage)
	}
	return Fail(c, fiber.StatusInternalServerError, err.Error())
}

// NotFoundResponse sends a 404 envelope
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return Fail(c, fiber.StatusNotFound, message)
}
