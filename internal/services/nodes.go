package services

import (
	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

const (
	MessageInvalidStatus = "状态值必须是0或1"
	MessageInvalidSwitch = "开关值必须是0或1"
	MessageInvalidName   = "节点名称不能为空"
)

// PageQuery selects one page of a list
type PageQuery struct {
	Page     int
	PageSize int
}

func (q PageQuery) offset() int {
	return (q.Page - 1) * q.PageSize
}

// Page is one page of a list plus the total row count
type Page[T any] struct {
	Total    int64 `json:"total"`
	List     []T   `json:"list"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

// NodeUpdate is a partial update of a node. Nil fields are left alone;
// identity, host and port only change through registration.
type NodeUpdate struct {
	NodeName *string          `json:"nodeName"`
	Status   *types.FlexInt64 `json:"status"`
	Switch   *types.FlexInt64 `json:"switch"`
	Threads  *types.FlexInt64 `json:"threads"`
}

func isBinary(v *types.FlexInt64) bool {
	return v.Int64() == 0 || v.Int64() == 1
}

func (u NodeUpdate) columns(withThreads bool) (map[string]interface{}, error) {
	cols := make(map[string]interface{})
	if u.NodeName != nil {
		if *u.NodeName == "" {
			return nil, types.InvalidArgument(MessageInvalidName)
		}
		cols["NodeName"] = *u.NodeName
	}
	if u.Status != nil {
		if !isBinary(u.Status) {
			return nil, types.InvalidArgument(MessageInvalidStatus)
		}
		cols["Status"] = int(u.Status.Int64())
	}
	if u.Switch != nil {
		if !isBinary(u.Switch) {
			return nil, types.InvalidArgument(MessageInvalidSwitch)
		}
		cols["Switch"] = int(u.Switch.Int64())
	}
	if withThreads && u.Threads != nil && u.Threads.Int64() > 0 {
		cols["Threads"] = int(u.Threads.Int64())
	}
	return cols, nil
}

// NodeView describes how one node type is read and written outside registration
type NodeView[T any] struct {
	Kind     NodeKind
	Preloads []string
	Threads  bool
	// Decorate fills fields that are not plain relations, such as a scanner's NDS list
	Decorate func(db *gorm.DB, nodes []T) error
}

var (
	GatewayView = NodeView[models.Gateway]{Kind: GatewayKind}
	ScannerView = NodeView[models.Scanner]{Kind: ScannerKind, Preloads: []string{"Gateway"}, Decorate: attachScannerNDS}
	ParserView  = NodeView[models.Parser]{Kind: ParserKind, Preloads: []string{"Gateway"}, Threads: true}
)

func (v NodeView[T]) query(db *gorm.DB) *gorm.DB {
	for _, p := range v.Preloads {
		db = db.Preload(p)
	}
	return db
}

func (v NodeView[T]) decorate(db *gorm.DB, nodes []T) error {
	if v.Decorate == nil || len(nodes) == 0 {
		return nil
	}
	return v.Decorate(db, nodes)
}

// List returns a page of nodes, newest first, optionally filtered by status
func (v NodeView[T]) List(db *gorm.DB, q PageQuery, status *int) (*Page[T], error) {
	base := db.Model(new(T))
	if status != nil {
		base = base.Where(map[string]interface{}{"Status": *status})
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	list := make([]T, 0, q.PageSize)
	err := v.query(base.Session(&gorm.Session{})).
		Clauses(hints.CommentBefore("select", "list:"+v.Kind.Prefix)).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "ID"}, Desc: true}).
		Offset(q.offset()).
		Limit(q.PageSize).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	if err := v.decorate(db, list); err != nil {
		return nil, err
	}

	return &Page[T]{Total: total, List: list, Page: q.Page, PageSize: q.PageSize}, nil
}

// Get returns one node with its relations
func (v NodeView[T]) Get(db *gorm.DB, id uint) (*T, error) {
	node := new(T)
	if err := v.query(db).First(node, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, types.NotFound(v.Kind.NotFound)
		}
		return nil, err
	}

	nodes := []T{*node}
	if err := v.decorate(db, nodes); err != nil {
		return nil, err
	}
	return &nodes[0], nil
}

func (v NodeView[T]) updateColumns(db *gorm.DB, id uint, cols map[string]interface{}) (*T, error) {
	err := db.Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, new(T), id)
		if err != nil {
			return err
		}
		if !ok {
			return types.NotFound(v.Kind.NotFound)
		}
		if len(cols) == 0 {
			return nil
		}
		return tx.Model(new(T)).Where(map[string]interface{}{"ID": id}).Updates(cols).Error
	})
	if err != nil {
		return nil, err
	}
	return v.Get(db, id)
}

// Update applies a partial update
func (v NodeView[T]) Update(db *gorm.DB, id uint, u NodeUpdate) (*T, error) {
	cols, err := u.columns(v.Threads)
	if err != nil {
		return nil, err
	}
	return v.updateColumns(db, id, cols)
}

// Logout marks a node offline
func (v NodeView[T]) Logout(db *gorm.DB, id uint) error {
	_, err := v.updateColumns(db, id, map[string]interface{}{"Status": models.StatusOffline})
	return err
}

// SetGateway binds a scanner or parser to an existing gateway
func (v NodeView[T]) SetGateway(db *gorm.DB, id, gatewayID uint) (*T, error) {
	ok, err := exists(db, &models.Gateway{}, gatewayID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, types.NotFound(GatewayKind.NotFound)
	}
	return v.updateColumns(db, id, map[string]interface{}{"GatewayID": gatewayID})
}

// Delete removes a node. Link rows go with it through ON DELETE CASCADE,
// and deleting a gateway detaches its scanners and parsers.
func (v NodeView[T]) Delete(db *gorm.DB, id uint) error {
	result := db.Where(map[string]interface{}{"ID": id}).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NotFound(v.Kind.NotFound)
	}
	return nil
}

// attachScannerNDS fills NDSList on each scanner with two queries for the whole slice
func attachScannerNDS(db *gorm.DB, scanners []models.Scanner) error {
	scannerIDs := lo.Map(scanners, func(s models.Scanner, _ int) uint { return s.ID })

	var links []models.ScannerNDSMap
	if err := db.Where(map[string]interface{}{models.ColumnScannerID: scannerIDs}).Find(&links).Error; err != nil {
		return err
	}

	servers := make(map[uint]models.NDSServer)
	if ndsIDs := lo.Uniq(lo.Map(links, func(l models.ScannerNDSMap, _ int) uint { return l.NDSID })); len(ndsIDs) > 0 {
		var rows []models.NDSServer
		if err := db.Where(map[string]interface{}{"ID": ndsIDs}).Find(&rows).Error; err != nil {
			return err
		}
		servers = lo.KeyBy(rows, func(n models.NDSServer) uint { return n.ID })
	}

	byScanner := lo.GroupBy(links, func(l models.ScannerNDSMap) uint { return l.ScannerID })
	for i := range scanners {
		list := make([]models.NDSServer, 0, len(byScanner[scanners[i].ID]))
		for _, l := range byScanner[scanners[i].ID] {
			if nds, ok := servers[l.NDSID]; ok {
				list = append(list, nds)
			}
		}
		scanners[i].NDSList = list
	}
	return nil
}
