package services

import (
	"strings"
	"time"

	"github.com/localnerve/mparser-center/internal/database"
	"github.com/localnerve/mparser-center/internal/models"
	"github.com/localnerve/mparser-center/internal/types"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

const (
	MessageTaskNotFound     = "任务不存在"
	MessageTaskNameRequired = "任务名称不能为空"
	MessageTaskENodeBIDs    = "请提供有效的基站ID列表"
	MessageTaskDataType     = "数据类型必须是MRO或MDT"
	MessageTaskTimeRange    = "结束时间不能早于开始时间"
)

// TaskInput creates a task together with the eNodeBs it covers
type TaskInput struct {
	TaskName  string       `json:"taskName"`
	DataType  string       `json:"dataType"`
	StartTime time.Time    `json:"startTime"`
	EndTime   time.Time    `json:"endTime"`
	ENodeBIDs types.IDList `json:"eNodeBIDs"`
}

// EnbUpdate adds and removes eNodeBs of an existing task
type EnbUpdate struct {
	AddEnbs    []uint `json:"addEnbs"`
	RemoveEnbs []uint `json:"removeEnbs"`
}

func (in *TaskInput) validate() error {
	in.TaskName = strings.TrimSpace(in.TaskName)
	if in.TaskName == "" {
		return types.InvalidArgument(MessageTaskNameRequired)
	}

	in.DataType = strings.ToUpper(strings.TrimSpace(in.DataType))
	if in.DataType == "" {
		in.DataType = models.DataTypeMRO
	}
	if in.DataType != models.DataTypeMRO && in.DataType != models.DataTypeMDT {
		return types.InvalidArgument(MessageTaskDataType)
	}

	if in.EndTime.Before(in.StartTime) {
		return types.InvalidArgument(MessageTaskTimeRange)
	}

	if in.ENodeBIDs.Check() != nil || len(in.ENodeBIDs.IDs) == 0 {
		return types.InvalidArgument(MessageTaskENodeBIDs)
	}
	return nil
}

// insertEnbs adds eNodeB rows to a task, skipping ones it already has
func insertEnbs(tx *gorm.DB, taskID uint64, enbIDs []uint) error {
	enbIDs = lo.Uniq(enbIDs)
	if len(enbIDs) == 0 {
		return nil
	}
	rows := lo.Map(enbIDs, func(id uint, _ int) models.EnbTask {
		return models.EnbTask{TaskID: taskID, ENodeBID: int(id)}
	})
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// CreateTask stores a task and its eNodeB rows in one transaction
func CreateTask(db *gorm.DB, in TaskInput) (*models.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	task := models.Task{
		TaskName:  in.TaskName,
		DataType:  in.DataType,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&task).Error; err != nil {
			return err
		}
		return insertEnbs(tx, task.TaskID, in.ENodeBIDs.IDs)
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// ListTasks returns a page of tasks, newest first, optionally of one data type
func ListTasks(db *gorm.DB, q PageQuery, dataType string) (*Page[models.Task], error) {
	base := db.Model(&models.Task{})
	if dataType = strings.ToUpper(strings.TrimSpace(dataType)); dataType != "" {
		base = base.Where(map[string]interface{}{"DataType": dataType})
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	list := make([]models.Task, 0, q.PageSize)
	err := base.Session(&gorm.Session{}).
		Clauses(hints.CommentBefore("select", "list:Task")).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "TaskID"}, Desc: true}).
		Offset(q.offset()).
		Limit(q.PageSize).
		Find(&list).Error
	if err != nil {
		return nil, err
	}

	return &Page[models.Task]{Total: total, List: list, Page: q.Page, PageSize: q.PageSize}, nil
}

// GetTask returns a task with its eNodeB rows
func GetTask(db *gorm.DB, taskID uint64) (*models.Task, error) {
	var task models.Task
	err := quiet(db).
		Preload("EnbTasks", func(tx *gorm.DB) *gorm.DB {
			return tx.Order(clause.OrderByColumn{Column: clause.Column{Name: "eNodeBID"}})
		}).
		First(&task, taskID).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, types.NotFound(MessageTaskNotFound)
		}
		return nil, err
	}
	return &task, nil
}

// UpdateTaskEnbs applies additions then removals in one transaction
func UpdateTaskEnbs(db *gorm.DB, taskID uint64, in EnbUpdate) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := quiet(tx).Model(&models.Task{}).Where(map[string]interface{}{"TaskID": taskID}).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return types.NotFound(MessageTaskNotFound)
		}

		if err := insertEnbs(tx, taskID, in.AddEnbs); err != nil {
			return err
		}

		if len(in.RemoveEnbs) > 0 {
			return tx.Where(map[string]interface{}{"TaskID": taskID, "eNodeBID": lo.Uniq(in.RemoveEnbs)}).
				Delete(&models.EnbTask{}).Error
		}
		return nil
	})
}

// DeleteTask removes a task; its eNodeB rows cascade
func DeleteTask(db *gorm.DB, taskID uint64) error {
	result := db.Where(map[string]interface{}{"TaskID": taskID}).Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return types.NotFound(MessageTaskNotFound)
	}
	return nil
}
