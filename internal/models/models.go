package models

import "time"

type NoticeCategory string

const (
	CategoryAnnouncement NoticeCategory = "공지"
	CategoryMaterial     NoticeCategory = "자료"
	CategoryReport       NoticeCategory = "보고서"
)

func (c NoticeCategory) Valid() bool {
	switch c {
	case CategoryAnnouncement, CategoryMaterial, CategoryReport:
		return true
	}
	return false
}

type Notice struct {
	ID       int            `yaml:"id"`
	Title    string         `yaml:"title"`
	Author   string         `yaml:"author"`
	Date     string         `yaml:"date"`
	Views    int            `yaml:"views"`
	Category NoticeCategory `yaml:"category"`
	Content  string         `yaml:"content"`
}

func (n Notice) RecordID() int { return n.ID }

type EquipmentStatus string

const (
	StatusActive   EquipmentStatus = "active"
	StatusStandby  EquipmentStatus = "standby"
	StatusInactive EquipmentStatus = "inactive"
)

func (s EquipmentStatus) Valid() bool {
	switch s {
	case StatusActive, StatusStandby, StatusInactive:
		return true
	}
	return false
}

type Equipment struct {
	ID        int             `yaml:"id"`
	Name      string          `yaml:"name"`
	Status    EquipmentStatus `yaml:"status"`
	Usage     int             `yaml:"usage"`
	Remaining string          `yaml:"remaining"`
	LastCheck string          `yaml:"lastCheck"`
}

func (e Equipment) RecordID() int { return e.ID }

type PartType string

const (
	PartSpare PartType = "SparePart"
	PartStore PartType = "Store"
)

// ToPartType maps anything that is not SparePart to Store.
func ToPartType(s string) PartType {
	if PartType(s) == PartSpare {
		return PartSpare
	}
	return PartStore
}

type Part struct {
	ID            int      `yaml:"id"`
	Name          string   `yaml:"name"`
	PartNo        string   `yaml:"partNo"`
	Equipment     string   `yaml:"equipment"`
	Type          PartType `yaml:"type"`
	UnitPrice     int      `yaml:"unitPrice"`
	TotalQty      int      `yaml:"totalQty"`
	UsedQty       int      `yaml:"usedQty"`
	RemainQty     int      `yaml:"remainQty"`
	FirstShipDate string   `yaml:"firstShipDate"`
}

func (p Part) RecordID() int { return p.ID }

type StockLevel string

const (
	StockLow    StockLevel = "재고 부족"
	StockNotice StockLevel = "재고 주의"
	StockOK     StockLevel = "재고 충분"
)

func (p Part) Stock() StockLevel {
	switch {
	case p.RemainQty < 5:
		return StockLow
	case p.RemainQty < 10:
		return StockNotice
	default:
		return StockOK
	}
}

type InspectionLog struct {
	ID           int    `yaml:"id"`
	Equipment    string `yaml:"equipment"`
	StartDate    string `yaml:"startDate"`
	Institution  string `yaml:"institution"`
	User         string `yaml:"user"`
	UseStartDate string `yaml:"useStartDate"`
	UseEndDate   string `yaml:"useEndDate"`
	Registrant   string `yaml:"registrant"`
	Purpose      string `yaml:"purpose"`
}

func (l InspectionLog) RecordID() int { return l.ID }

type OperationLog struct {
	ID         int    `yaml:"id"`
	Equipment  string `yaml:"equipment"`
	StartDate  string `yaml:"startDate"`
	EndDate    string `yaml:"endDate"`
	UseTime    string `yaml:"useTime"`
	Activity   string `yaml:"activity"`
	ActualUser string `yaml:"actualUser"`
}

func (l OperationLog) RecordID() int { return l.ID }

// ImportFailure - файл, который не удалось импортировать.
type ImportFailure struct {
	ID        int
	Filename  string
	Error     string
	CreatedAt time.Time
}

func (f ImportFailure) RecordID() int { return f.ID }

type StatusCount struct {
	Total    int
	Active   int
	Standby  int
	Inactive int
}

type Dashboard struct {
	Equipment       StatusCount
	LowStockParts   int
	RecentEquipment []Equipment
	RecentParts     []Part
	RecentNotices   []Notice
}
