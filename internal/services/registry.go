// registry.go
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

package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"gorm.io/gorm"
)

// MessagePortRequired is returned when a registration carries no port
const MessagePortRequired = "端口号不能为空"

// DefaultParserThreads is used when a parser registers without a thread count
const DefaultParserThreads = 4

// RegisterInput is the body of a node registration. Field names match
// case-insensitively, so both "port" and "Port" bind.
type RegisterInput struct {
	ID      *types.FlexInt64 `json:"id"`
	Port    types.FlexInt64  `json:"port"`
	Threads *types.FlexInt64 `json:"threads"`
}

// isNew reports whether the input asks for a fresh node. Absent, 0 and -1 all do.
func (in RegisterInput) isNew() bool {
	return in.ID == nil || in.ID.Int64() == 0 || in.ID.Int64() == -1
}

// NodeKind configures the registration algorithm for one node type
type NodeKind struct {
	Prefix        string
	DefaultSwitch int
	NotFound      string
	// Extras returns kind-specific columns to write. created is true for a new node.
	Extras func(in RegisterInput, created bool) map[string]interface{}
}

var (
	GatewayKind = NodeKind{
		Prefix:        "Gateway",
		DefaultSwitch: 0,
		NotFound:      "网关不存在",
	}

	ScannerKind = NodeKind{
		Prefix:        "Scanner",
		DefaultSwitch: 0,
		NotFound:      "扫描器不存在",
	}

	ParserKind = NodeKind{
		Prefix:        "Parser",
		DefaultSwitch: 1,
		NotFound:      "解析器不存在",
		Extras: func(in RegisterInput, created bool) map[string]interface{} {
			if in.Threads != nil && in.Threads.Int64() > 0 {
				return map[string]interface{}{"Threads": int(in.Threads.Int64())}
			}
			if created {
				return map[string]interface{}{"Threads": DefaultParserThreads}
			}
			return nil
		},
	}
)

// temporaryName is the placeholder a node carries until its identity is known
func temporaryName(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, suffix[:7])
}

// Register upserts a node by identity. A known id is brought back online at
// the caller's host and port. Otherwise a node is created and renamed to
// "<Prefix>-<id>" within the same transaction, so the placeholder name is never visible.
func Register[T any, PT interface {
	*T
	models.Node
}](db *gorm.DB, kind NodeKind, in RegisterInput, host string) (*T, error) {
	port := in.Port.Int64()
	if port <= 0 {
		return nil, types.InvalidArgument(MessagePortRequired)
	}

	var extras map[string]interface{}
	if kind.Extras != nil {
		extras = kind.Extras(in, in.isNew())
	}

	node := PT(new(T))
	err := db.Transaction(func(tx *gorm.DB) error {
		if !in.isNew() {
			if err := tx.First(node, in.ID.Int64()).Error; err != nil {
				if database.IsNotFound(err) {
					return types.NotFound(kind.NotFound)
				}
				return err
			}

			updates := map[string]interface{}{
				"Status": models.StatusOnline,
				"Host":   host,
				"Port":   int(port),
			}
			for k, v := range extras {
				updates[k] = v
			}
			if err := tx.Model(node).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(node, node.Base().ID).Error
		}

		base := node.Base()
		base.NodeName = temporaryName(kind.Prefix)
		base.Status = models.StatusOnline
		base.Host = host
		base.Port = int(port)
		base.Switch = kind.DefaultSwitch
		if err := tx.Create(node).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"NodeName": fmt.Sprintf("%s-%d", kind.Prefix, base.ID),
		}
		for k, v := range extras {
			updates[k] = v
		}
		if err := tx.Model(node).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(node, base.ID).Error
	})
	if err != nil {
		return nil, err
	}

	return (*T)(node), nil
}

// RegisterGateway registers a gateway
func RegisterGateway(db *gorm.DB, in RegisterInput, host string) (*models.Gateway, error) {
	return Register[models.Gateway](db, GatewayKind, in, host)
}

// RegisterScanner registers a scanner
func RegisterScanner(db *gorm.DB, in RegisterInput, host string) (*models.Scanner, error) {
	return Register[models.Scanner](db, ScannerKind, in, host)
}

// RegisterParser registers a parser
func RegisterParser(db *gorm.DB, in RegisterInput, host string) (*models.Parser, error) {
	return Register[models.Parser](db, ParserKind, in, host)
}
