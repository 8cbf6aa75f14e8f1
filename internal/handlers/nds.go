package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/probe"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/utils"
)

// NDSHandler handles NDS server routes
type NDSHandler struct {
	Base
	Prober       *probe.Prober
	ProbeTimeout time.Duration
}

// List handles GET /api/nds/list
// @Summary List NDS servers
// @Tags NDS
// @Produce json
// @Param page query int false "Page, from 1"
// @Param pageSize query int false "Page size"
// @Param keyword query string false "Matches name or address"
// @Success 200 {object} utils.Envelope
// @Router /nds/list [get]
func (h *NDSHandler) List(c *fiber.Ctx) error {
	page, err := services.ListNDS(h.DB, parsePage(c), c.Query("keyword"))
	if err != nil {
		return h.fail(c, err, "listNDS")
	}
	return utils.OK(c, page, "")
}

// Get handles GET /api/nds/:id
// @Summary Get an NDS server
// @Tags NDS
// @Produce json
// @Param id path int true "NDS ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /nds/{id} [get]
func (h *NDSHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "getNDS")
	}

	nds, err := services.GetNDS(h.DB, id)
	if err != nil {
		return h.fail(c, err, "getNDS")
	}
	return utils.OK(c, nds, "")
}

// Create handles POST /api/nds/add
// @Summary Add an NDS server
// @Tags NDS
// @Accept json
// @Produce json
// @Param body body services.NDSInput true "Server"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /nds/add [post]
func (h *NDSHandler) Create(c *fiber.Ctx) error {
	var in services.NDSInput
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "addNDS")
	}

	nds, err := services.CreateNDS(h.DB, in)
	if err != nil {
		return h.fail(c, err, "addNDS")
	}
	return utils.OK(c, nds, MessageCreated)
}

// Update handles PUT /api/nds/:id
// @Summary Update an NDS server
// @Tags NDS
// @Accept json
// @Produce json
// @Param id path int true "NDS ID"
// @Param body body services.NDSInput true "Fields to change"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /nds/{id} [put]
func (h *NDSHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "updateNDS")
	}

	var in services.NDSInput
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "updateNDS")
	}

	nds, err := services.UpdateNDS(h.DB, id, in)
	if err != nil {
		return h.fail(c, err, "updateNDS")
	}
	return utils.OK(c, nds, MessageUpdated)
}

// Delete handles DELETE /api/nds/:id
// @Summary Delete an NDS server
// @Tags NDS
// @Produce json
// @Param id path int true "NDS ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /nds/{id} [delete]
func (h *NDSHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "deleteNDS")
	}

	if err := services.DeleteNDS(h.DB, id); err != nil {
		return h.fail(c, err, "deleteNDS")
	}
	return utils.OK(c, nil, MessageDeleted)
}

// Test handles POST /api/nds/:id/test. A failed probe is still a 200;
// the outcome is in data.isConnected.
// @Summary Probe an NDS server
// @Description Connects over the configured protocol and checks the MRO and MDT paths
// @Tags NDS
// @Produce json
// @Param id path int true "NDS ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /nds/{id}/test [post]
func (h *NDSHandler) Test(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "testNDS")
	}

	nds, err := services.GetNDS(h.DB, id)
	if err != nil {
		return h.fail(c, err, "testNDS")
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.ProbeTimeout)
	defer cancel()

	result := h.Prober.Probe(ctx, probe.FromNDS(nds))
	return utils.OK(c, result, "")
}
