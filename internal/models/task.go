package models

import "time"

// Task data types
const (
	DataTypeMRO = "MRO"
	DataTypeMDT = "MDT"
)

// Task is a row of TaskList. Tasks are stored for the parsing fleet; nothing here executes them.
type Task struct {
	TaskID    uint64    `gorm:"column:TaskID;primaryKey;autoIncrement" json:"taskId"`
	TaskName  string    `gorm:"column:TaskName;size:200;not null;index" json:"taskName"`
	DataType  string    `gorm:"column:DataType;size:20;not null" json:"dataType"`
	StartTime time.Time `gorm:"column:StartTime;not null" json:"startTime"`
	EndTime   time.Time `gorm:"column:EndTime;not null" json:"endTime"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`
	EnbTasks  []EnbTask `gorm:"foreignKey:TaskID;references:TaskID;constraint:OnDelete:CASCADE" json:"enbTasks,omitempty"`
}

// EnbTask is a row of EnbTaskList: one eNodeB covered by a task
type EnbTask struct {
	ID           uint64    `gorm:"column:ID;primaryKey;autoIncrement" json:"id"`
	TaskID       uint64    `gorm:"column:TaskID;not null;uniqueIndex:unique_task_enb,priority:1" json:"taskId"`
	ENodeBID     int       `gorm:"column:eNodeBID;not null;uniqueIndex:unique_task_enb,priority:2" json:"eNodeBID"`
	ScanStatus   int       `gorm:"column:ScanStatus;not null;default:0" json:"scanStatus"`
	ParsedStatus int       `gorm:"column:ParsedStatus;not null;default:0" json:"parsedStatus"`
	CreatedAt    time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Task) TableName() string {
	return "TaskList"
}

func (EnbTask) TableName() string {
	return "EnbTaskList"
}
