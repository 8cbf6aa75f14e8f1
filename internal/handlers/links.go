// links.go
//
// Management-plane data service for the MParser collection fleet
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of mparser-center.
// mparser-center is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// mparser-center is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with mparser-center.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/localnerve/mparser-center/internal/utils"
	"gorm.io/gorm"
)

// LinkHandler exposes a Reconciler over HTTP
type LinkHandler struct {
	Base
	Links services.Reconciler
	// Render builds the body returned after a batch change
	Render func(db *gorm.DB, nodeID uint) (interface{}, error)
}

type ndsIDsBody struct {
	ScannerID types.FlexInt64 `json:"scannerId"`
	NDSIDs    types.IDList    `json:"ndsIds"`
}

type ndsIDBody struct {
	NDSID types.FlexInt64 `json:"ndsId"`
}

func (h *LinkHandler) render(c *fiber.Ctx, nodeID uint, message, op string) error {
	if h.Render == nil {
		return utils.OK(c, nil, message)
	}
	body, err := h.Render(h.DB, nodeID)
	if err != nil {
		return h.fail(c, err, op)
	}
	return utils.OK(c, body, message)
}

// nodeAndIDs reads the node from the route, or from scannerId in the body when
// the route has no :id, and the ndsIds array
func (h *LinkHandler) nodeAndIDs(c *fiber.Ctx) (uint, []uint, error) {
	var body ndsIDsBody
	if err := parseBody(c, &body); err != nil {
		return 0, nil, err
	}

	var nodeID uint
	if c.Params("id") != "" {
		id, err := parseID(c, "id")
		if err != nil {
			return 0, nil, err
		}
		nodeID = id
	} else {
		if body.ScannerID.Int64() <= 0 {
			return 0, nil, types.InvalidArgument(MessageInvalidID)
		}
		nodeID = uint(body.ScannerID.Int64())
	}

	if err := checkIDList(body.NDSIDs); err != nil {
		return 0, nil, err
	}
	return nodeID, body.NDSIDs.IDs, nil
}

// List handles GET /api/<kind>/:id/nds
// @Summary List linked NDS servers
// @Tags Associations
// @Produce json
// @Param id path int true "Node ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind}/{id}/nds [get]
func (h *LinkHandler) List(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "listNDS")
	}

	list, err := h.Links.List(h.DB, id)
	if err != nil {
		return h.fail(c, err, "listNDS")
	}
	return utils.OK(c, list, "")
}

// Replace handles PUT /api/<kind>/:id/nds
// @Summary Replace the linked NDS set
// @Description All ids must exist; the new set replaces the old one atomically
// @Tags Associations
// @Accept json
// @Produce json
// @Param id path int true "Node ID"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind}/{id}/nds [put]
func (h *LinkHandler) Replace(c *fiber.Ctx) error {
	id, ids, err := h.nodeAndIDs(c)
	if err != nil {
		return h.fail(c, err, "replaceNDS")
	}

	list, err := h.Links.Replace(h.DB, id, ids)
	if err != nil {
		return h.fail(c, err, "replaceNDS")
	}
	return utils.OK(c, list, "")
}

// AddOne handles POST /api/gateway/:id/nds with {ndsId}. An existing pair is a 400.
// @Summary Link one NDS server
// @Tags Associations
// @Accept json
// @Produce json
// @Param id path int true "Node ID"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /gateway/{id}/nds [post]
func (h *LinkHandler) AddOne(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "addNDS")
	}

	var body ndsIDBody
	if err := parseBody(c, &body); err != nil {
		return h.fail(c, err, "addNDS")
	}
	if body.NDSID.Int64() <= 0 {
		return h.fail(c, types.InvalidArgument(MessageInvalidID), "addNDS")
	}

	if err := h.Links.AddOne(h.DB, id, uint(body.NDSID.Int64())); err != nil {
		return h.fail(c, err, "addNDS")
	}
	return utils.OK(c, nil, MessageAdded)
}

// AddMany handles POST /api/scanner/:id/nds and POST /api/scanner/nds with {ndsIds}.
// Already linked ids are skipped.
// @Summary Link several NDS servers
// @Tags Associations
// @Accept json
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /scanner/{id}/nds [post]
func (h *LinkHandler) AddMany(c *fiber.Ctx) error {
	id, ids, err := h.nodeAndIDs(c)
	if err != nil {
		return h.fail(c, err, "addNDS")
	}

	if _, err := h.Links.AddMany(h.DB, id, ids); err != nil {
		return h.fail(c, err, "addNDS")
	}
	return h.render(c, id, MessageAdded, "addNDS")
}

// RemoveOne handles DELETE /api/<kind>/:id/nds/:ndsId
// @Summary Unlink one NDS server
// @Tags Associations
// @Produce json
// @Param id path int true "Node ID"
// @Param ndsId path int true "NDS ID"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind}/{id}/nds/{ndsId} [delete]
func (h *LinkHandler) RemoveOne(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return h.fail(c, err, "removeNDS")
	}
	ndsID, err := parseID(c, "ndsId")
	if err != nil {
		return h.fail(c, err, "removeNDS")
	}

	if err := h.Links.RemoveOne(h.DB, id, ndsID); err != nil {
		return h.fail(c, err, "removeNDS")
	}
	return utils.OK(c, nil, MessageRemoved)
}

// RemoveMany handles DELETE /api/<kind>/:id/nds and DELETE /api/scanner/nds with {ndsIds}
// @Summary Unlink several NDS servers
// @Tags Associations
// @Accept json
// @Produce json
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Param kind path string true "gateway, scanner or parser"
// @Router /{kind}/{id}/nds [delete]
func (h *LinkHandler) RemoveMany(c *fiber.Ctx) error {
	id, ids, err := h.nodeAndIDs(c)
	if err != nil {
		return h.fail(c, err, "removeNDS")
	}

	if _, err := h.Links.RemoveMany(h.DB, id, ids); err != nil {
		return h.fail(c, err, "removeNDS")
	}
	return h.render(c, id, MessageRemoved, "removeNDS")
}
