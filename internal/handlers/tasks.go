package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/localnerve/mparser-center/internal/utils"
)

// TaskHandler handles collection task routes
type TaskHandler struct {
	Base
}

func parseTaskID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("taskId"), 10, 64)
	if err != nil || id == 0 {
		return 0, types.InvalidArgument(MessageInvalidID)
	}
	return id, nil
}

// Create handles POST /api/task/add
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Param body body services.TaskInput true "Task and eNodeB ids"
// @Success 200 {object} utils.Envelope
// @Failure 400 {object} utils.Envelope
// @Router /task/add [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in services.TaskInput
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "createTask")
	}

	task, err := services.CreateTask(h.DB, in)
	if err != nil {
		return h.fail(c, err, "createTask")
	}
	return utils.OK(c, fiber.Map{"taskId": task.TaskID}, "任务创建成功")
}

// List handles GET /api/task/list
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Param dataType query string false "MRO or MDT"
// @Success 200 {object} utils.Envelope
// @Router /task/list [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	page, err := services.ListTasks(h.DB, parsePage(c), c.Query("dataType"))
	if err != nil {
		return h.fail(c, err, "listTasks")
	}
	return utils.OK(c, page, "")
}

// Detail handles GET /api/task/detail/:taskId
func (h *TaskHandler) Detail(c *fiber.Ctx) error {
	id, err := parseTaskID(c)
	if err != nil {
		return h.fail(c, err, "getTask")
	}

	task, err := services.GetTask(h.DB, id)
	if err != nil {
		return h.fail(c, err, "getTask")
	}
	return utils.OK(c, task, "")
}

// UpdateEnbs handles PUT /api/task/:taskId/enbs
func (h *TaskHandler) UpdateEnbs(c *fiber.Ctx) error {
	id, err := parseTaskID(c)
	if err != nil {
		return h.fail(c, err, "updateTaskEnbs")
	}

	var in services.EnbUpdate
	if err := parseBody(c, &in); err != nil {
		return h.fail(c, err, "updateTaskEnbs")
	}

	if err := services.UpdateTaskEnbs(h.DB, id, in); err != nil {
		return h.fail(c, err, "updateTaskEnbs")
	}
	return utils.OK(c, nil, "基站列表更新成功")
}

// Delete handles DELETE /api/task/:taskId
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	id, err := parseTaskID(c)
	if err != nil {
		return h.fail(c, err, "deleteTask")
	}

	if err := services.DeleteTask(h.DB, id); err != nil {
		return h.fail(c, err, "deleteTask")
	}
	return utils.OK(c, nil, "任务删除成功")
}
