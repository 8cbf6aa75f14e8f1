package models

// Join-table column names, shared by the reconciler and the schema
const (
	ColumnGatewayID = "gatewayId"
	ColumnScannerID = "scannerId"
	ColumnNDSID     = "ndsId"
)

// GatewayNDSMap links a Gateway to an NDS server. The pair is unique.
type GatewayNDSMap struct {
	ID        uint       `gorm:"column:ID;primaryKey;autoIncrement" json:"id"`
	GatewayID uint       `gorm:"column:gatewayId;not null;uniqueIndex:unique_gateway_nds,priority:1" json:"gatewayId"`
	NDSID     uint       `gorm:"column:ndsId;not null;uniqueIndex:unique_gateway_nds,priority:2;index" json:"ndsId"`
	Gateway   *Gateway   `gorm:"foreignKey:GatewayID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"-"`
	NDS       *NDSServer `gorm:"foreignKey:NDSID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"-"`
}

// ScannerNDSMap links a Scanner to an NDS server. The pair is unique.
type ScannerNDSMap struct {
	ID        uint       `gorm:"column:ID;primaryKey;autoIncrement" json:"id"`
	ScannerID uint       `gorm:"column:scannerId;not null;uniqueIndex:unique_scanner_nds,priority:1" json:"scannerId"`
	NDSID     uint       `gorm:"column:ndsId;not null;uniqueIndex:unique_scanner_nds,priority:2;index" json:"ndsId"`
	Scanner   *Scanner   `gorm:"foreignKey:ScannerID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"-"`
	NDS       *NDSServer `gorm:"foreignKey:NDSID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"-"`
}

func (GatewayNDSMap) TableName() string {
	return "GatewayNDSMap"
}

func (ScannerNDSMap) TableName() string {
	return "ScannerNDSMap"
}
