package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownTarget = errors.New("unknown search target")

// Цели поиска для каждой сущности. Нулевое значение - поиск по всем полям.

type NoticeTarget int

const (
	NoticeAll NoticeTarget = iota
	NoticeTitle
	NoticeContent
	NoticeAuthor
)

type EquipmentTarget int

const (
	EquipmentAll EquipmentTarget = iota
	EquipmentName
	EquipmentStatusField
)

type PartTarget int

const (
	PartAll PartTarget = iota
	PartName
	PartEquipment
	PartTypeField
	PartNumber
)

type InspectionTarget int

const (
	InspectionAll InspectionTarget = iota
	InspectionEquipment
	InspectionInstitution
	InspectionUser
	InspectionRegistrant
	InspectionPurpose
	InspectionStartDate
	InspectionUseStartDate
	InspectionUseEndDate
)

type OperationTarget int

const (
	OperationAll OperationTarget = iota
	OperationEquipment
	OperationUser
	OperationActivity
	OperationStartDate
	OperationEndDate
	OperationUseTime
)

// ImportFailureTarget has only one searchable field besides the sentinel.
type ImportFailureTarget int

const (
	ImportFailureAll ImportFailureTarget = iota
	ImportFailureFilename
)

type targetName struct {
	key   string
	label string
}

var (
	noticeTargets = map[NoticeTarget]targetName{
		NoticeAll:     {"all", "전체"},
		NoticeTitle:   {"title", "제목"},
		NoticeContent: {"content", "내용"},
		NoticeAuthor:  {"author", "작성자"},
	}
	equipmentTargets = map[EquipmentTarget]targetName{
		EquipmentAll:         {"all", "전체"},
		EquipmentName:        {"name", "장비명"},
		EquipmentStatusField: {"status", "상태"},
	}
	partTargets = map[PartTarget]targetName{
		PartAll:       {"all", "전체"},
		PartName:      {"name", "부속품명"},
		PartEquipment: {"equipment", "장비"},
		PartTypeField: {"type", "유형"},
		PartNumber:    {"partNo", "파트번호"},
	}
	inspectionTargets = map[InspectionTarget]targetName{
		InspectionAll:          {"all", "전체"},
		InspectionEquipment:    {"equipment", "장비"},
		InspectionInstitution:  {"institution", "기관"},
		InspectionUser:         {"user", "사용자"},
		InspectionRegistrant:   {"registrant", "등록자"},
		InspectionPurpose:      {"purpose", "목적"},
		InspectionStartDate:    {"startDate", "연구시작일"},
		InspectionUseStartDate: {"useStartDate", "사용시작일"},
		InspectionUseEndDate:   {"useEndDate", "사용종료일"},
	}
	operationTargets = map[OperationTarget]targetName{
		OperationAll:       {"all", "전체"},
		OperationEquipment: {"equipment", "장비"},
		OperationUser:      {"user", "사용자"},
		OperationActivity:  {"activity", "활동"},
		OperationStartDate: {"startDate", "연구시작일"},
		OperationEndDate:   {"endDate", "연구종료일"},
		OperationUseTime:   {"useTime", "시간"},
	}
	importFailureTargets = map[ImportFailureTarget]targetName{
		ImportFailureAll:      {"all", "전체"},
		ImportFailureFilename: {"filename", "파일명"},
	}
)

// parseTarget accepts the English key (case-insensitive) or the Korean label.
// Empty input selects the sentinel.
func parseTarget[K comparable](names map[K]targetName, s string) (K, error) {
	var zero K
	s = strings.TrimSpace(s)
	if s == "" {
		return zero, nil
	}
	for k, n := range names {
		if strings.EqualFold(n.key, s) || n.label == s {
			return k, nil
		}
	}
	return zero, fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

func ParseNoticeTarget(s string) (NoticeTarget, error) { return parseTarget(noticeTargets, s) }
func ParseEquipmentTarget(s string) (EquipmentTarget, error) {
	return parseTarget(equipmentTargets, s)
}
func ParsePartTarget(s string) (PartTarget, error) { return parseTarget(partTargets, s) }
func ParseInspectionTarget(s string) (InspectionTarget, error) {
	return parseTarget(inspectionTargets, s)
}
func ParseOperationTarget(s string) (OperationTarget, error) {
	return parseTarget(operationTargets, s)
}
func ParseImportFailureTarget(s string) (ImportFailureTarget, error) {
	return parseTarget(importFailureTargets, s)
}

func (t NoticeTarget) String() string        { return noticeTargets[t].key }
func (t EquipmentTarget) String() string     { return equipmentTargets[t].key }
func (t PartTarget) String() string          { return partTargets[t].key }
func (t InspectionTarget) String() string    { return inspectionTargets[t].key }
func (t OperationTarget) String() string     { return operationTargets[t].key }
func (t ImportFailureTarget) String() string { return importFailureTargets[t].key }

func (t NoticeTarget) Label() string     { return noticeTargets[t].label }
func (t EquipmentTarget) Label() string  { return equipmentTargets[t].label }
func (t PartTarget) Label() string       { return partTargets[t].label }
func (t InspectionTarget) Label() string { return inspectionTargets[t].label }
func (t OperationTarget) Label() string  { return operationTargets[t].label }
