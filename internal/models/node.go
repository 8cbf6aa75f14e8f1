package models

// Node status values
const (
	StatusOffline = 0
	StatusOnline  = 1
)

// Node is implemented by every registrable fleet member
type Node interface {
	Base() *NodeBase
	TableName() string
}

// NodeBase holds the columns shared by Gateway, Scanner and Parser rows
type NodeBase struct {
	ID       uint   `gorm:"column:ID;primaryKey;autoIncrement" json:"id"`
	NodeName string `gorm:"column:NodeName;size:150;not null;index" json:"nodeName"`
	Host     string `gorm:"column:Host;size:100;not null" json:"host"`
	Port     int    `gorm:"column:Port;not null" json:"port"`
	Status   int    `gorm:"column:Status;not null;index" json:"status"`
	Switch   int    `gorm:"column:Switch;not null" json:"switch"`
}

// Gateway is a row of GatewayList
type Gateway struct {
	NodeBase
}

// Scanner is a row of ScannerList
type Scanner struct {
	NodeBase
	GatewayID *uint    `gorm:"column:GatewayID;index" json:"gatewayId"`
	Gateway   *Gateway `gorm:"foreignKey:GatewayID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE" json:"gateway,omitempty"`

	// Filled from ScannerNDSMap by the service layer
	NDSList []NDSServer `gorm:"-" json:"ndsList,omitempty"`
}

// Parser is a row of ParserList
type Parser struct {
	NodeBase
	GatewayID *uint    `gorm:"column:GatewayID;index" json:"gatewayId"`
	Gateway   *Gateway `gorm:"foreignKey:GatewayID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE" json:"gateway,omitempty"`
	Threads   int      `gorm:"column:Threads;not null;default:4" json:"threads"`
}

func (n *NodeBase) Base() *NodeBase { return n }

func (Gateway) TableName() string {
	return "GatewayList"
}

func (Scanner) TableName() string {
	return "ScannerList"
}

func (Parser) TableName() string {
	return "ParserList"
}
