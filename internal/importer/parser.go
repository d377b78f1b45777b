package importer

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/service"
)

// Parser знает заголовок одной сущности и умеет создать запись из строки файла.
type Parser struct {
	entity  models.Entity
	headers []string
	create  func(ctx context.Context, svc ServiceAPI, line []string) error
}

func (p *Parser) Entity() models.Entity { return p.entity }

func (p *Parser) Headers() []string {
	out := make([]string, len(p.headers))
	copy(out, p.headers)
	return out
}

func (p *Parser) validateHeaders(hs []string) bool {
	if len(hs) != len(p.headers) {
		return false
	}
	for i, h := range hs {
		if strings.TrimSpace(h) != p.headers[i] {
			return false
		}
	}
	return true
}

func (p *Parser) parse(ctx context.Context, svc ServiceAPI, line []string) error {
	if len(line) != len(p.headers) {
		return fmt.Errorf("expected %d fields, got %d", len(p.headers), len(line))
	}
	for i := range line {
		line[i] = strings.TrimSpace(line[i])
	}
	return p.create(ctx, svc, line)
}

func atoi(name, v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s given: %s", name, v)
	}
	return n, nil
}

// Parsers returns the known file layouts. Column names are the JSON field names.
func Parsers() []*Parser {
	return []*Parser{
		{
			entity:  models.EntityNotices,
			headers: []string{"title", "author", "date", "category", "content"},
			create: func(ctx context.Context, svc ServiceAPI, l []string) error {
				_, err := svc.CreateNotice(ctx, service.NoticeInput{
					Title: l[0], Author: l[1], Date: l[2], Category: models.NoticeCategory(l[3]), Content: l[4],
				})
				return err
			},
		},
		{
			entity:  models.EntityEquipment,
			headers: []string{"name", "status", "usage", "remaining", "lastCheck"},
			create: func(ctx context.Context, svc ServiceAPI, l []string) error {
				var usage float64
				if l[2] != "" {
					var err error
					if usage, err = strconv.ParseFloat(l[2], 64); err != nil {
						return fmt.Errorf("usage given: %s", l[2])
					}
				}
				_, err := svc.CreateEquipment(ctx, service.EquipmentInput{
					Name: l[0], Status: models.EquipmentStatus(l[1]), Usage: usage, Remaining: l[3], LastCheck: l[4],
				})
				return err
			},
		},
		{
			entity:  models.EntityParts,
			headers: []string{"name", "partNo", "equipment", "type", "unitPrice", "totalQty", "usedQty", "firstShipDate"},
			create: func(ctx context.Context, svc ServiceAPI, l []string) error {
				price, err := atoi("unitPrice", l[4])
				if err != nil {
					return err
				}
				total, err := atoi("totalQty", l[5])
				if err != nil {
					return err
				}
				used, err := atoi("usedQty", l[6])
				if err != nil {
					return err
				}
				_, err = svc.CreatePart(ctx, service.PartInput{
					Name: l[0], PartNo: l[1], Equipment: l[2], Type: models.PartType(l[3]),
					UnitPrice: price, TotalQty: total, UsedQty: used, FirstShipDate: l[7],
				})
				return err
			},
		},
		{
			entity:  models.EntityInspections,
			headers: []string{"equipment", "startDate", "institution", "user", "useStartDate", "useEndDate", "registrant", "purpose"},
			create: func(ctx context.Context, svc ServiceAPI, l []string) error {
				_, err := svc.CreateInspectionLog(ctx, service.InspectionInput{
					Equipment: l[0], StartDate: l[1], Institution: l[2], User: l[3],
					UseStartDate: l[4], UseEndDate: l[5], Registrant: l[6], Purpose: l[7],
				})
				return err
			},
		},
		{
			entity:  models.EntityOperations,
			headers: []string{"equipment", "startDate", "endDate", "useTime", "activity", "actualUser"},
			create: func(ctx context.Context, svc ServiceAPI, l []string) error {
				_, err := svc.CreateOperationLog(ctx, service.OperationInput{
					Equipment: l[0], StartDate: l[1], EndDate: l[2], UseTime: l[3], Activity: l[4], ActualUser: l[5],
				})
				return err
			},
		},
	}
}

func detect(parsers []*Parser, hs []string) (*Parser, bool) {
	for _, p := range parsers {
		if p.validateHeaders(hs) {
			return p, true
		}
	}
	return nil, false
}
