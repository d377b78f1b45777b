package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Notice struct {
	ID       int32
	Title    string
	Author   string
	Date     pgtype.Date
	Views    int32
	Category string
	Content  pgtype.Text
}

type Equipment struct {
	ID        int32
	Name      string
	Status    string
	Usage     int32
	Remaining pgtype.Text
	LastCheck pgtype.Date
}

type Part struct {
	ID            int32
	Name          string
	PartNo        string
	Equipment     string
	Type          string
	UnitPrice     int64
	TotalQty      int32
	UsedQty       int32
	RemainQty     int32
	FirstShipDate pgtype.Date
}

type InspectionLog struct {
	ID           int32
	Equipment    string
	StartDate    pgtype.Date
	Institution  string
	User         string
	UseStartDate pgtype.Date
	UseEndDate   pgtype.Date
	Registrant   pgtype.Text
	Purpose      pgtype.Text
}

type OperationLog struct {
	ID         int32
	Equipment  string
	StartDate  pgtype.Date
	EndDate    pgtype.Date
	UseTime    pgtype.Text
	Activity   pgtype.Text
	ActualUser string
}
