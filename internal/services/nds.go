package services

import (
	"strings"

	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

const (
	MessageServerNotFound      = "服务器不存在"
	MessageServerDuplicate     = "服务器名称或地址端口组合已存在"
	MessageServerFieldsMissing = "服务器名称、地址、账号和密码不能为空"
	MessageUnsupportedProtocol = "不支持的协议类型"
	MessageInvalidPort         = "端口号无效"
)

// NDSInput is the writable part of an NDS server. Nil fields keep their
// current value on update and take the default on create.
type NDSInput struct {
	Name      *string          `json:"name"`
	Address   *string          `json:"address"`
	Port      *types.FlexInt64 `json:"port"`
	Protocol  *string          `json:"protocol"`
	Account   *string          `json:"account"`
	Password  *string          `json:"password"`
	MROPath   *string          `json:"mroPath"`
	MROFilter *string          `json:"mroFilter"`
	MDTPath   *string          `json:"mdtPath"`
	MDTFilter *string          `json:"mdtFilter"`
	Switch    *types.FlexInt64 `json:"switch"`
}

// defaultNDS is the starting point for a new server
func defaultNDS() models.NDSServer {
	return models.NDSServer{
		Port:      models.DefaultNDSPort,
		Protocol:  models.ProtocolSFTP,
		MROPath:   models.DefaultMROPath,
		MROFilter: models.DefaultMROFilter,
		MDTPath:   models.DefaultMDTPath,
		MDTFilter: models.DefaultMDTFilter,
		Switch:    1,
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// apply merges the input into n and validates the result
func (in NDSInput) apply(n *models.NDSServer) error {
	setString(&n.Name, in.Name)
	setString(&n.Address, in.Address)
	setString(&n.Account, in.Account)
	setString(&n.MROPath, in.MROPath)
	setString(&n.MROFilter, in.MROFilter)
	setString(&n.MDTPath, in.MDTPath)
	setString(&n.MDTFilter, in.MDTFilter)
	if in.Password != nil {
		n.Password = *in.Password
	}
	if in.Protocol != nil {
		n.Protocol = strings.ToUpper(strings.TrimSpace(*in.Protocol))
	}
	if in.Port != nil {
		n.Port = int(in.Port.Int64())
	}
	if in.Switch != nil {
		if !isBinary(in.Switch) {
			return types.InvalidArgument(MessageInvalidSwitch)
		}
		n.Switch = int(in.Switch.Int64())
	}

	if n.Name == "" || n.Address == "" || n.Account == "" || n.Password == "" {
		return types.InvalidArgument(MessageServerFieldsMissing)
	}
	if n.Port < 1 || n.Port > 65535 {
		return types.InvalidArgument(MessageInvalidPort)
	}
	if n.Protocol != models.ProtocolFTP && n.Protocol != models.ProtocolSFTP {
		return types.InvalidArgument(MessageUnsupportedProtocol)
	}
	return nil
}

// checkDuplicate rejects a server whose name, or address and port, is taken by another row
func checkDuplicate(db *gorm.DB, n *models.NDSServer) error {
	clash := db.Where(map[string]interface{}{"Name": n.Name}).
		Or(map[string]interface{}{"Address": n.Address, "Port": n.Port})

	q := quiet(db).Model(&models.NDSServer{}).Where(clash)
	if n.ID != 0 {
		q = q.Not(map[string]interface{}{"ID": n.ID})
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return types.Conflict(MessageServerDuplicate, 400)
	}
	return nil
}

func saveNDS(db *gorm.DB, n *models.NDSServer) error {
	if err := checkDuplicate(db, n); err != nil {
		return err
	}
	if err := db.Save(n).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return types.Conflict(MessageServerDuplicate, 400)
		}
		return err
	}
	return nil
}

// ListNDS returns a page of servers, newest first. keyword matches name or address.
func ListNDS(db *gorm.DB, q PageQuery, keyword string) (*Page[models.NDSServer], error) {
	base := db.Model(&models.NDSServer{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		base = base.Where(clause.Or(
			clause.Like{Column: clause.Column{Name: "Name"}, Value: pattern},
			clause.Like{Column: clause.Column{Name: "Address"}, Value: pattern},
		))
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	list := make([]models.NDSServer, 0, q.PageSize)
	err := base.Session(&gorm.Session{}).
		Clauses(hints.CommentBefore("select", "list:NDS")).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "ID"}, Desc: true}).
		Offset(q.offset()).
		Limit(q.PageSize).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	return &Page[models.NDSServer]{Total: total, List: list, Page: q.Page, PageSize: q.PageSize}, nil
}

// GetNDS returns one server, password included for internal callers
func GetNDS(db *gorm.DB, id uint) (*models.NDSServer, error) {
	var n models.NDSServer
	if err := quiet(db).First(&n, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, types.NotFound(MessageServerNotFound)
		}
		return nil, err
	}
	return &n, nil
}

// CreateNDS validates, fills defaults and stores a new server
func CreateNDS(db *gorm.DB, in NDSInput) (*models.NDSServer, error) {
	n := defaultNDS()
	if err := in.apply(&n); err != nil {
		return nil, err
	}
	if err := saveNDS(db, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// UpdateNDS merges the input into an existing server
func UpdateNDS(db *gorm.DB, id uint, in NDSInput) (*models.NDSServer, error) {
	var updated *models.NDSServer
	err := db.Transaction(func(tx *gorm.DB) error {
		n, err := GetNDS(tx, id)
		if err != nil {
			return err
		}
		if err := in.apply(n); err != nil {
			return err
		}
		if err := saveNDS(tx, n); err != nil {
			return err
		}
		updated = n
		return nil
	})
	return updated, err
}

// DeleteNDS removes a server; its gateway and scanner links cascade
func DeleteNDS(db *gorm.DB, id uint) error {
	result := db.Where(map[string]interface{}{"ID": id}).Delete(&models.NDSServer{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NotFound(MessageServerNotFound)
	}
	return nil
}
