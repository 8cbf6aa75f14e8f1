package models

import "time"

// CellData is a row of CellData: engineering parameters of one cell, keyed by CGI.
// Rows are reference data for the parsing fleet and are never processed here.
type CellData struct {
	CGI       string    `gorm:"column:CGI;primaryKey;size:128" json:"cgi"`
	ENodeBID  int       `gorm:"column:eNodeBID;not null;index" json:"eNodeBID"`
	PCI       int       `gorm:"column:PCI;not null" json:"pci"`
	Azimuth   *int      `gorm:"column:Azimuth" json:"azimuth"`
	Earfcn    int       `gorm:"column:Earfcn;not null" json:"earfcn"`
	Freq      *int      `gorm:"column:Freq" json:"freq"`
	ENBName   *string   `gorm:"column:eNBName;size:128" json:"eNBName"`
	UserLabel *string   `gorm:"column:UserLabel;size:128" json:"userLabel"`
	Longitude *float64  `gorm:"column:Longitude;type:decimal(10,6)" json:"longitude"`
	Latitude  *float64  `gorm:"column:Latitude;type:decimal(10,6)" json:"latitude"`
	CreatedAt time.Time `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt" json:"updatedAt"`
}

func (CellData) TableName() string {
	return "CellData"
}
