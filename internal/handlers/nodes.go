package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/localnerve/mparser-center/internal/utils"
	"gorm.io/gorm"
)

// RegisterFunc is one of the services.Register* functions
type RegisterFunc[T any] func(db *gorm.DB, in services.RegisterInput, host string) (*T, error)

// NodeHandler serves the routes every node type shares
type NodeHandler[T any] struct {
	Base
	View       services.NodeView[T]
	Register   RegisterFunc[T]
	Registered string
}

// HandleRegister handles POST /api/<kind>/register
// @Summary Register a node
// @Description Creates a node, or brings a known one back online at the caller's address
// @Tags Nodes
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Identity and listening port"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind}/register [post]
func (h *NodeHandler[T]) HandleRegister(c *fiber.Ctx) error {
	// A missing or unreadable body registers nothing, so it fails on the port
	var in services.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		in = services.RegisterInput{}
	}
	if in.Port.Int64() <= 0 {
		return utils.Fail(c, fiber.StatusBadRequest, services.MessagePortRequired)
	}

	node, err := h.Register(h.DB, in, utils.ClientIP(c))
	if err != nil {
		return h.fail(c, err, "register")
	}
	return utils.OK(c, node, h.Registered)
}

// List handles GET /api/<kind>
// @Summary List nodes
// @Tags Nodes
// @Produce json
// @Param page query int false "Page, from 1"
// @Param pageSize query int false "Page size"
// @Param status query int false "0 offline, 1 online"
// @Success 200 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind} [get]
func (h *NodeHandler[T]) List(c *fiber.Ctx) error {
	status, err := parseStatus(c)
	if err != nil {
		return h.fail(c, err, "list")
	}

	page, err := h.View.List(h.DB, parsePage(c), status)
	if err != nil {
		return h.fail(c, err, "list")
	}
	return utils.OK(c, page, "")
}

// Get handles GET /api/<kind>/:id
func (h *NodeHandler[T]) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "get")
	}

	node, err := h.View.Get(h.DB, id)
	if err != nil {
		return h.fail(c, err, "get")
	}
	return utils.OK(c, node, "")
}

// Update handles PUT /api/<kind>/:id. An id in the body is ignored.
func (h *NodeHandler[T]) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "update")
	}

	var in services.NodeUpdate
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "update")
	}

	node, err := h.View.Update(h.DB, id, in)
	if err != nil {
		return h.fail(c, err, "update")
	}
	return utils.OK(c, node, MessageUpdated)
}

// Delete handles DELETE /api/<kind>/:id
func (h *NodeHandler[T]) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "delete")
	}

	if err := h.View.Delete(h.DB, id); err != nil {
		return h.fail(c, err, "delete")
	}
	return utils.OK(c, nil, MessageDeleted)
}

// Logout handles POST /api/<kind>/:id/logout
func (h *NodeHandler[T]) Logout(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "logout")
	}

	if err := h.View.Logout(h.DB, id); err != nil {
		return h.fail(c, err, "logout")
	}
	return utils.OK(c, nil, MessageLoggedOut)
}

// gatewayBinding is the body of POST /api/scanner/gateway and /api/parser/gateway
type gatewayBinding struct {
	ScannerID types.FlexInt64 `json:"scannerId"`
	ParserID  types.FlexInt64 `json:"parserId"`
	GatewayID types.FlexInt64 `json:"gatewayId"`
}

func (b gatewayBinding) nodeID() int64 {
	if b.ScannerID != 0 {
		return b.ScannerID.Int64()
	}
	return b.ParserID.Int64()
}

// SetGateway handles POST /api/scanner/gateway and /api/parser/gateway
// @Summary Bind a scanner or parser to a gateway
// @Tags Nodes
// @Accept json
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind}/gateway [post]
func (h *NodeHandler[T]) SetGateway(c *fiber.Ctx) error {
	var in gatewayBinding
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "setGateway")
	}
	if in.nodeID() <= 0 || in.GatewayID.Int64() <= 0 {
		return h.fail(c, types.InvalidArgument(MessageInvalidID), "setGateway")
	}

	node, err := h.View.SetGateway(h.DB, uint(in.nodeID()), uint(in.GatewayID.Int64()))
	if err != nil {
		return h.fail(c, err, "setGateway")
	}
	return utils.OK(c, node, "网关设置成功")
}
