// common.go
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
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/mparser-center/internal/services"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/localnerve/mparser-center/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	MessageInvalidID        = "无效的ID"
	MessageInvalidBody      = "请求参数格式错误"
	MessageNDSIDsNotArray   = "ndsIds必须是数组"
	MessageNDSIDsNotNumbers = "ndsIds数组的所有元素必须是数字"
	MessageAdded            = "关联添加成功"
	MessageRemoved          = "关联删除成功"
	MessageDeleted          = "删除成功"
	MessageUpdated          = "更新成功"
	MessageCreated          = "添加成功"
	MessageLoggedOut        = "登出成功"

	defaultPageSize = 10
	cellPageSize    = 50
	maxPageSize     = 100
)

// Base carries what every handler needs
type Base struct {
	DB           *gorm.DB
	Log          *logrus.Logger
	HideInternal bool
}

// fail answers with the error's envelope. Unexpected errors are logged with the operation name.
func (b *Base) fail(c *fiber.Ctx, err error, op string) error {
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Code >= fiber.StatusInternalServerError {
		b.Log.WithFields(logrus.Fields{
			"op":     op,
			"method": c.Method(),
			"path":   c.Path(),
		}).WithError(err).Error("Request failed")
	}
	return utils.FailFrom(c, err, b.HideInternal)
}

// parseID reads a positive integer route parameter
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, types.InvalidArgument(MessageInvalidID)
	}
	return uint(id), nil
}

// parsePage reads page and pageSize, falling back to the first page of ten
func parsePage(c *fiber.Ctx) services.PageQuery {
	return pageOf(c, defaultPageSize)
}

func pageOf(c *fiber.Ctx, fallback int) services.PageQuery {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	size := c.QueryInt("pageSize", fallback)
	if size < 1 {
		size = fallback
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return services.PageQuery{Page: page, PageSize: size}
}

// parseStatus reads an optional status filter
func parseStatus(c *fiber.Ctx) (*int, error) {
	raw := c.Query("status")
	if raw == "" {
		return nil, nil
	}
	status, err := strconv.Atoi(raw)
	if err != nil || (status != 0 && status != 1) {
		return nil, types.InvalidArgument(services.MessageInvalidStatus)
	}
	return &status, nil
}

// parseBody binds the JSON body, mapping decode failures to a 400
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return types.InvalidArgument(MessageInvalidBody)
	}
	return nil
}

// checkIDList maps an ndsIds decode problem to its message
func checkIDList(list types.IDList) error {
	switch err := list.Check(); {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrNonNumericIDs):
		return types.InvalidArgument(MessageNDSIDsNotNumbers)
	default:
		return types.InvalidArgument(MessageNDSIDsNotArray)
	}
}
