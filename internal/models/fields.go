package models

import "github.com/glekoz/rvdesk/internal/query"

// Поля для поиска. Порядок Add определяет порядок проверки для "전체".

func NoticeFields() *query.Fields[Notice, NoticeTarget] {
	return query.NewFields[Notice](NoticeAll).
		Add(NoticeTitle, func(n Notice) string { return n.Title }).
		Add(NoticeAuthor, func(n Notice) string { return n.Author }).
		Add(NoticeContent, func(n Notice) string { return n.Content })
}

func EquipmentFields() *query.Fields[Equipment, EquipmentTarget] {
	return query.NewFields[Equipment](EquipmentAll).
		Add(EquipmentName, func(e Equipment) string { return e.Name }).
		Add(EquipmentStatusField, func(e Equipment) string { return string(e.Status) })
}

func PartFields() *query.Fields[Part, PartTarget] {
	return query.NewFields[Part](PartAll).
		Add(PartName, func(p Part) string { return p.Name }).
		Add(PartEquipment, func(p Part) string { return p.Equipment }).
		Add(PartTypeField, func(p Part) string { return string(p.Type) }).
		Add(PartNumber, func(p Part) string { return p.PartNo })
}

func InspectionFields() *query.Fields[InspectionLog, InspectionTarget] {
	return query.NewFields[InspectionLog](InspectionAll).
		Add(InspectionEquipment, func(l InspectionLog) string { return l.Equipment }).
		Add(InspectionInstitution, func(l InspectionLog) string { return l.Institution }).
		Add(InspectionUser, func(l InspectionLog) string { return l.User }).
		Add(InspectionRegistrant, func(l InspectionLog) string { return l.Registrant }).
		Add(InspectionPurpose, func(l InspectionLog) string { return l.Purpose }).
		Add(InspectionStartDate, func(l InspectionLog) string { return l.StartDate }).
		Add(InspectionUseStartDate, func(l InspectionLog) string { return l.UseStartDate }).
		Add(InspectionUseEndDate, func(l InspectionLog) string { return l.UseEndDate })
}

func OperationFields() *query.Fields[OperationLog, OperationTarget] {
	return query.NewFields[OperationLog](OperationAll).
		Add(OperationEquipment, func(l OperationLog) string { return l.Equipment }).
		Add(OperationUser, func(l OperationLog) string { return l.ActualUser }).
		Add(OperationActivity, func(l OperationLog) string { return l.Activity }).
		Add(OperationStartDate, func(l OperationLog) string { return l.StartDate }).
		Add(OperationEndDate, func(l OperationLog) string { return l.EndDate }).
		Add(OperationUseTime, func(l OperationLog) string { return l.UseTime })
}

func ImportFailureFields() *query.Fields[ImportFailure, ImportFailureTarget] {
	return query.NewFields[ImportFailure](ImportFailureAll).
		Add(ImportFailureFilename, func(f ImportFailure) string { return f.Filename })
}
