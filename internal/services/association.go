// association.go
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
	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	MessageNDSNotFound         = "NDS不存在"
	MessageSomeNDSNotFound     = "部分NDS服务器不存在"
	MessageInvalidNDSIDs       = "存在无效的NDS ID"
	MessageAssociationExists   = "关联已存在"
	MessageAssociationNotFound = "关联不存在"
)

// Reconciler manages the links between one node type and NDS servers.
// Every operation runs in a single transaction; the unique (node, nds)
// index on the join table is the only guard against concurrent duplicates.
type Reconciler struct {
	nodeColumn string
	notFound   string
	nodeModel  func() interface{}
	linkModel  func() interface{}
	newLinks   func(nodeID uint, ndsIDs []uint) interface{}
}

// GatewayNDS links gateways to NDS servers through GatewayNDSMap
var GatewayNDS = Reconciler{
	nodeColumn: models.ColumnGatewayID,
	notFound:   GatewayKind.NotFound,
	nodeModel:  func() interface{} { return &models.Gateway{} },
	linkModel:  func() interface{} { return &models.GatewayNDSMap{} },
	newLinks: func(nodeID uint, ndsIDs []uint) interface{} {
		links := lo.Map(ndsIDs, func(id uint, _ int) models.GatewayNDSMap {
			return models.GatewayNDSMap{GatewayID: nodeID, NDSID: id}
		})
		return &links
	},
}

// ScannerNDS links scanners to NDS servers through ScannerNDSMap
var ScannerNDS = Reconciler{
	nodeColumn: models.ColumnScannerID,
	notFound:   ScannerKind.NotFound,
	nodeModel:  func() interface{} { return &models.Scanner{} },
	linkModel:  func() interface{} { return &models.ScannerNDSMap{} },
	newLinks: func(nodeID uint, ndsIDs []uint) interface{} {
		links := lo.Map(ndsIDs, func(id uint, _ int) models.ScannerNDSMap {
			return models.ScannerNDSMap{ScannerID: nodeID, NDSID: id}
		})
		return &links
	},
}

// quiet silences the SQL logger for lookups whose miss is an expected outcome
func quiet(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})
}

func exists(tx *gorm.DB, model interface{}, id uint) (bool, error) {
	var count int64
	err := quiet(tx).Model(model).Where(map[string]interface{}{"ID": id}).Count(&count).Error
	return count > 0, err
}

func (r Reconciler) requireNode(tx *gorm.DB, nodeID uint) error {
	ok, err := exists(tx, r.nodeModel(), nodeID)
	if err != nil {
		return err
	}
	if !ok {
		return types.NotFound(r.notFound)
	}
	return nil
}

func countNDS(tx *gorm.DB, ids []uint) (int64, error) {
	var count int64
	err := tx.Model(&models.NDSServer{}).Where(map[string]interface{}{"ID": ids}).Count(&count).Error
	return count, err
}

func (r Reconciler) linkedIDs(tx *gorm.DB, nodeID uint) ([]uint, error) {
	var ids []uint
	err := tx.Model(r.linkModel()).
		Where(map[string]interface{}{r.nodeColumn: nodeID}).
		Pluck(models.ColumnNDSID, &ids).Error
	return ids, err
}

func (r Reconciler) linkedNDS(tx *gorm.DB, nodeID uint) ([]models.NDSServer, error) {
	ids, err := r.linkedIDs(tx, nodeID)
	if err != nil {
		return nil, err
	}

	list := make([]models.NDSServer, 0, len(ids))
	if len(ids) == 0 {
		return list, nil
	}
	err = tx.Where(map[string]interface{}{"ID": ids}).Order(clause.OrderByColumn{Column: clause.Column{Name: "ID"}}).Find(&list).Error
	return list, err
}

// List returns the NDS servers linked to a node
func (r Reconciler) List(db *gorm.DB, nodeID uint) ([]models.NDSServer, error) {
	if err := r.requireNode(db, nodeID); err != nil {
		return nil, err
	}
	return r.linkedNDS(db, nodeID)
}

// AddOne links a single NDS server and refuses a pair that already exists
func (r Reconciler) AddOne(db *gorm.DB, nodeID, ndsID uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := r.requireNode(tx, nodeID); err != nil {
			return err
		}

		ok, err := exists(tx, &models.NDSServer{}, ndsID)
		if err != nil {
			return err
		}
		if !ok {
			return types.NotFound(MessageNDSNotFound)
		}

		var count int64
		err = tx.Model(r.linkModel()).
			Where(map[string]interface{}{r.nodeColumn: nodeID, models.ColumnNDSID: ndsID}).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return types.Conflict(MessageAssociationExists, 400)
		}

		return tx.Create(r.newLinks(nodeID, []uint{ndsID})).Error
	})

	// A concurrent writer can insert the pair between the check and the insert
	if database.IsUniqueViolation(err) {
		return types.Conflict(MessageAssociationExists, 400)
	}
	return err
}

// AddMany links every NDS server in ndsIDs that is not linked yet and returns
// how many links were created. Existing pairs are skipped silently.
func (r Reconciler) AddMany(db *gorm.DB, nodeID uint, ndsIDs []uint) (int, error) {
	ndsIDs = lo.Uniq(ndsIDs)
	created := 0

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := r.requireNode(tx, nodeID); err != nil {
			return err
		}
		if len(ndsIDs) == 0 {
			return nil
		}

		count, err := countNDS(tx, ndsIDs)
		if err != nil {
			return err
		}
		if count != int64(len(ndsIDs)) {
			return types.NotFound(MessageSomeNDSNotFound)
		}

		linked, err := r.linkedIDs(tx, nodeID)
		if err != nil {
			return err
		}
		fresh := lo.Without(ndsIDs, linked...)
		if len(fresh) == 0 {
			return nil
		}

		// A pair inserted concurrently since the diff is ignored rather than failing the batch
		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(r.newLinks(nodeID, fresh))
		if result.Error != nil {
			return result.Error
		}
		created = int(result.RowsAffected)
		return nil
	})

	return created, err
}

// Replace makes ndsIDs the complete link set of a node and returns the linked
// servers. Every id must exist; the old set is deleted before the new one is
// inserted, in one transaction.
func (r Reconciler) Replace(db *gorm.DB, nodeID uint, ndsIDs []uint) ([]models.NDSServer, error) {
	ndsIDs = lo.Uniq(ndsIDs)
	var list []models.NDSServer

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := r.requireNode(tx, nodeID); err != nil {
			return err
		}

		if len(ndsIDs) > 0 {
			count, err := countNDS(tx, ndsIDs)
			if err != nil {
				return err
			}
			if count != int64(len(ndsIDs)) {
				return types.InvalidArgument(MessageInvalidNDSIDs)
			}
		}

		err := tx.Where(map[string]interface{}{r.nodeColumn: nodeID}).Delete(r.linkModel()).Error
		if err != nil {
			return err
		}

		if len(ndsIDs) > 0 {
			if err := tx.Create(r.newLinks(nodeID, ndsIDs)).Error; err != nil {
				return err
			}
		}

		list, err = r.linkedNDS(tx, nodeID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// RemoveOne unlinks a single pair. Both ends must exist, and so must the link.
func (r Reconciler) RemoveOne(db *gorm.DB, nodeID, ndsID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := r.requireNode(tx, nodeID); err != nil {
			return err
		}

		ok, err := exists(tx, &models.NDSServer{}, ndsID)
		if err != nil {
			return err
		}
		if !ok {
			return types.NotFound(MessageNDSNotFound)
		}

		result := tx.Where(map[string]interface{}{r.nodeColumn: nodeID, models.ColumnNDSID: ndsID}).Delete(r.linkModel())
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return types.NotFound(MessageAssociationNotFound)
		}
		return nil
	})
}

// RemoveMany unlinks every listed pair in one statement. Pairs that do not
// exist are ignored; the number of removed links is returned.
func (r Reconciler) RemoveMany(db *gorm.DB, nodeID uint, ndsIDs []uint) (int64, error) {
	var removed int64

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := r.requireNode(tx, nodeID); err != nil {
			return err
		}
		if len(ndsIDs) == 0 {
			return nil
		}

		result := tx.Where(map[string]interface{}{r.nodeColumn: nodeID, models.ColumnNDSID: lo.Uniq(ndsIDs)}).Delete(r.linkModel())
		removed = result.RowsAffected
		return result.Error
	})

	return removed, err
}
