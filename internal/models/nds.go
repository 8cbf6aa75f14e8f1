package models

// Supported NDS transfer protocols
const (
	ProtocolFTP  = "FTP"
	ProtocolSFTP = "SFTP"
)

// Defaults carried over from the collection fleet's stock configuration
const (
	DefaultNDSPort   = 2121
	DefaultMROPath   = "/MR/MRO/"
	DefaultMROFilter = "^/MR/MRO/[^/]+/[^/]+_MRO_[^/]+.zip$"
	DefaultMDTPath   = "/MDT/"
	DefaultMDTFilter = "^/MDT/[^/]+/CSV/LOG-MDT/.*_LOG-MDT_.*.zip$"
)

// NDSServer is a row of NDSList: a remote FTP/SFTP source of measurement files.
// Name is unique, and so is the (Address, Port) pair.
type NDSServer struct {
	ID        uint   `gorm:"column:ID;primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"column:Name;size:150;not null;uniqueIndex:unique_nds_name" json:"name"`
	Address   string `gorm:"column:Address;size:100;not null;uniqueIndex:unique_nds_endpoint" json:"address"`
	Port      int    `gorm:"column:Port;not null;uniqueIndex:unique_nds_endpoint" json:"port"`
	Protocol  string `gorm:"column:Protocol;size:20;not null" json:"protocol"`
	Account   string `gorm:"column:Account;size:100;not null" json:"account"`
	Password  string `gorm:"column:Password;size:100;not null" json:"-"`
	MROPath   string `gorm:"column:MRO_Path;size:250;not null" json:"mroPath"`
	MROFilter string `gorm:"column:MRO_Filter;size:250;not null" json:"mroFilter"`
	MDTPath   string `gorm:"column:MDT_Path;size:250;not null" json:"mdtPath"`
	MDTFilter string `gorm:"column:MDT_Filter;size:250;not null" json:"mdtFilter"`
	Switch    int    `gorm:"column:Switch;not null" json:"switch"`
}

func (NDSServer) TableName() string {
	return "NDSList"
}
