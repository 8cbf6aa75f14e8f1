package services

import (
	"strings"

	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

const (
	MessageCellExists        = "CGI已存在,不能重复添加"
	MessageCellFieldsMissing = "CGI、基站ID、PCI和频点不能为空"
	MessageCellNotUpdated    = "没有字段需要更新"
	MessageCellNotFound      = "未找到要删除的记录"
	MessageCellListInvalid   = "请提供有效的CGI列表"
	MessageCellFieldInvalid  = "无效的查询字段"

	// CellFieldAll searches CGI, eNBName and UserLabel at once
	CellFieldAll = "all"
)

// cellColumns maps the lowercased filter names a client may send to their column
var cellColumns = map[string]string{
	"cgi":       "CGI",
	"enodebid":  "eNodeBID",
	"pci":       "PCI",
	"azimuth":   "Azimuth",
	"earfcn":    "Earfcn",
	"freq":      "Freq",
	"enbname":   "eNBName",
	"userlabel": "UserLabel",
}

// CellInput is the writable part of a cell. On update only the non-nil
// fields change; CGI picks the row and is never rewritten.
type CellInput struct {
	CGI       string           `json:"cgi"`
	ENodeBID  *types.FlexInt64 `json:"eNodeBID"`
	PCI       *types.FlexInt64 `json:"pci"`
	Azimuth   *types.FlexInt64 `json:"azimuth"`
	Earfcn    *types.FlexInt64 `json:"earfcn"`
	Freq      *types.FlexInt64 `json:"freq"`
	ENBName   *string          `json:"eNBName"`
	UserLabel *string          `json:"userLabel"`
	Longitude *float64         `json:"longitude"`
	Latitude  *float64         `json:"latitude"`
}

func optionalInt(v *types.FlexInt64) *int {
	if v == nil {
		return nil
	}
	return lo.ToPtr(int(v.Int64()))
}

func (in CellInput) model() (*models.CellData, error) {
	cgi := strings.TrimSpace(in.CGI)
	if cgi == "" || in.ENodeBID == nil || in.PCI == nil || in.Earfcn == nil {
		return nil, types.InvalidArgument(MessageCellFieldsMissing)
	}
	return &models.CellData{
		CGI:       cgi,
		ENodeBID:  int(in.ENodeBID.Int64()),
		PCI:       int(in.PCI.Int64()),
		Azimuth:   optionalInt(in.Azimuth),
		Earfcn:    int(in.Earfcn.Int64()),
		Freq:      optionalInt(in.Freq),
		ENBName:   in.ENBName,
		UserLabel: in.UserLabel,
		Longitude: in.Longitude,
		Latitude:  in.Latitude,
	}, nil
}

func (in CellInput) columns() map[string]interface{} {
	cols := make(map[string]interface{})
	for column, v := range map[string]*types.FlexInt64{
		"eNodeBID": in.ENodeBID,
		"PCI":      in.PCI,
		"Azimuth":  in.Azimuth,
		"Earfcn":   in.Earfcn,
		"Freq":     in.Freq,
	} {
		if v != nil {
			cols[column] = int(v.Int64())
		}
	}
	if in.ENBName != nil {
		cols["eNBName"] = *in.ENBName
	}
	if in.UserLabel != nil {
		cols["UserLabel"] = *in.UserLabel
	}
	if in.Longitude != nil {
		cols["Longitude"] = *in.Longitude
	}
	if in.Latitude != nil {
		cols["Latitude"] = *in.Latitude
	}
	return cols
}

// ListCells returns a page of cells ordered by CGI. With a field other than
// "all" the keyword only matches that column.
func ListCells(db *gorm.DB, q PageQuery, field, keyword string) (*Page[models.CellData], error) {
	base := db.Model(&models.CellData{})
	if keyword = strings.TrimSpace(keyword); keyword != "" {
		pattern := "%" + keyword + "%"
		field = strings.ToLower(strings.TrimSpace(field))
		if field == "" || field == CellFieldAll {
			base = base.Where(clause.Or(
				clause.Like{Column: clause.Column{Name: "CGI"}, Value: pattern},
				clause.Like{Column: clause.Column{Name: "eNBName"}, Value: pattern},
				clause.Like{Column: clause.Column{Name: "UserLabel"}, Value: pattern},
			))
		} else {
			column, ok := cellColumns[field]
			if !ok {
				return nil, types.InvalidArgument(MessageCellFieldInvalid)
			}
			base = base.Where(clause.Like{Column: clause.Column{Name: column}, Value: pattern})
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	list := make([]models.CellData, 0, q.PageSize)
	err := base.Session(&gorm.Session{}).
		Clauses(hints.CommentBefore("select", "list:CellData")).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "CGI"}}).
		Offset(q.offset()).
		Limit(q.PageSize).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	return &Page[models.CellData]{Total: total, List: list, Page: q.Page, PageSize: q.PageSize}, nil
}

// CellExists reports whether a cell with this CGI is stored
func CellExists(db *gorm.DB, cgi string) (bool, error) {
	var count int64
	err := quiet(db).Model(&models.CellData{}).
		Where(map[string]interface{}{"CGI": strings.TrimSpace(cgi)}).
		Count(&count).Error
	return count > 0, err
}

// CreateCell stores a new cell; a taken CGI is a 400
func CreateCell(db *gorm.DB, in CellInput) (*models.CellData, error) {
	cell, err := in.model()
	if err != nil {
		return nil, err
	}

	taken, err := CellExists(db, cell.CGI)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, types.Conflict(MessageCellExists, 400)
	}

	if err := db.Create(cell).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, types.Conflict(MessageCellExists, 400)
		}
		return nil, err
	}
	return cell, nil
}

// UpdateCell changes the given fields of the cell named by in.CGI. An
// unknown CGI and an empty field set are both a 404, as nothing was updated.
func UpdateCell(db *gorm.DB, in CellInput) error {
	cgi := strings.TrimSpace(in.CGI)
	if cgi == "" {
		return types.InvalidArgument(MessageCellFieldsMissing)
	}
	cols := in.columns()
	if len(cols) == 0 {
		return types.NotFound(MessageCellNotUpdated)
	}

	result := db.Model(&models.CellData{}).
		Where(map[string]interface{}{"CGI": cgi}).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NotFound(MessageCellNotUpdated)
	}
	return nil
}

// RemoveCell deletes one cell by CGI
func RemoveCell(db *gorm.DB, cgi string) error {
	result := db.Where(map[string]interface{}{"CGI": strings.TrimSpace(cgi)}).Delete(&models.CellData{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NotFound(MessageCellNotFound)
	}
	return nil
}

// BatchDeleteCells deletes every listed cell and returns how many existed
func BatchDeleteCells(db *gorm.DB, cgis []string) (int64, error) {
	cgis = lo.Uniq(lo.Compact(lo.Map(cgis, func(s string, _ int) string {
		return strings.TrimSpace(s)
	})))
	if len(cgis) == 0 {
		return 0, types.InvalidArgument(MessageCellListInvalid)
	}

	result := db.Where(map[string]interface{}{"CGI": cgis}).Delete(&models.CellData{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
