package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/localnerve/mparser-center/internal/utils"
)

// CellDataHandler handles the cell engineering parameter routes
type CellDataHandler struct {
	Base
}

type cellBatch struct {
	CGIs json.RawMessage `json:"cgis"`
}

// List handles GET /api/cell/list
// @Summary List cells
// @Tags Cells
// @Produce json
// @Param page query int false "Page, from 1"
// @Param pageSize query int false "Page size, 50 by default"
// @Param field query string false "Column to search, or all"
// @Param keyword query string false "Matches CGI, eNBName or userLabel unless field narrows it"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /cell/list [get]
func (h *CellDataHandler) List(c *fiber.Ctx) error {
	page, err := services.ListCells(h.DB, pageOf(c, cellPageSize), c.Query("field"), c.Query("keyword"))
	if err != nil {
		return h.fail(c, err, "listCells")
	}
	return utils.OK(c, page, "")
}

// Create handles POST /api/cell/add
// @Summary Add a cell
// @Tags Cells
// @Accept json
// @Produce json
// @Param body body services.CellInput true "Cell"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /cell/add [post]
func (h *CellDataHandler) Create(c *fiber.Ctx) error {
	var in services.CellInput
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "addCell")
	}

	if _, err := services.CreateCell(h.DB, in); err != nil {
		return h.fail(c, err, "addCell")
	}
	return utils.OK(c, nil, "新增成功")
}

// Update handles POST /api/cell/update
// @Summary Update a cell
// @Description The body's cgi picks the row; every other present field is written
// @Tags Cells
// @Accept json
// @Produce json
// @Param body body services.CellInput true "CGI and the fields to change"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /cell/update [post]
func (h *CellDataHandler) Update(c *fiber.Ctx) error {
	var in services.CellInput
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "updateCell")
	}

	if err := services.UpdateCell(h.DB, in); err != nil {
		return h.fail(c, err, "updateCell")
	}
	return utils.OK(c, nil, MessageUpdated)
}

// Remove handles DELETE /api/cell/remove/:cgi
// @Summary Delete a cell
// @Tags Cells
// @Produce json
// @Param cgi path string true "CGI"
// @Success 200 {object} utils.Envelope
// @Failure 404 {object} utils.Envelope
// @Router /cell/remove/{cgi} [delete]
func (h *CellDataHandler) Remove(c *fiber.Ctx) error {
	if err := services.RemoveCell(h.DB, c.Params("cgi")); err != nil {
		return h.fail(c, err, "removeCell")
	}
	return utils.OK(c, nil, MessageDeleted)
}

// BatchDelete handles POST /api/cell/batch-delete
// @Summary Delete several cells
// @Tags Cells
// @Accept json
// @Produce json
// @Param body body object true "{cgis: [...]}"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /cell/batch-delete [post]
func (h *CellDataHandler) BatchDelete(c *fiber.Ctx) error {
	var in cellBatch
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "batchDeleteCells")
	}
	var cgis []string
	if err := json.Unmarshal(in.CGIs, &cgis); err != nil {
		return h.fail(c, types.InvalidArgument(services.MessageCellListInvalid), "batchDeleteCells")
	}

	deleted, err := services.BatchDeleteCells(h.DB, cgis)
	if err != nil {
		return h.fail(c, err, "batchDeleteCells")
	}
	return utils.OK(c, fiber.Map{"deletedCount": deleted}, "批量删除成功")
}

// Check handles GET /api/cell/check/:cgi
// @Summary Check whether a CGI is taken
// @Tags Cells
// @Produce json
// @Param cgi path string true "CGI"
// @Success 200 {object} utils.Envelope
// @Router /cell/check/{cgi} [get]
func (h *CellDataHandler) Check(c *fiber.Ctx) error {
	exists, err := services.CellExists(h.DB, c.Params("cgi"))
	if err != nil {
		return h.fail(c, err, "checkCGI")
	}
	return utils.OK(c, fiber.Map{"exists": exists}, "")
}
