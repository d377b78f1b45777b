package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/glekoz/rvdesk/internal/models"
)

// Обновления с неизвестным id ничего не меняют и возвращают false без ошибки.

func (s *Service) UpdateEquipmentStatus(ctx context.Context, id int, status models.EquipmentStatus) (models.Equipment, bool, error) {
	if !status.Valid() {
		return models.Equipment{}, false, invalid(fmt.Sprintf("알 수 없는 상태: %s", status))
	}
	if err := s.wait(ctx, s.delays.Write); err != nil {
		return models.Equipment{}, false, err
	}
	e, ok := s.equipment.Update(id, func(e models.Equipment) models.Equipment {
		e.Status = status
		return e
	})
	if ok {
		s.logger.InfoContext(ctx, "equipment status changed", slog.Int("id", id), slog.String("status", string(status)))
	}
	return e, ok, nil
}

// EquipmentPatch - частичное изменение; nil-поля не трогаются.
type EquipmentPatch struct {
	Name      *string
	Status    *models.EquipmentStatus
	Usage     *float64
	Remaining *string
	LastCheck *string
}

func (p EquipmentPatch) validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("장비명을 입력하세요.")
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid(fmt.Sprintf("알 수 없는 상태: %s", *p.Status))
	}
	if p.Usage != nil && !validUsage(*p.Usage) {
		return invalid("사용률은 0~100 사이여야 합니다.")
	}
	return nil
}

func (p EquipmentPatch) apply(e models.Equipment) models.Equipment {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	if p.Usage != nil {
		e.Usage = int(math.Round(*p.Usage))
	}
	if p.Remaining != nil {
		e.Remaining = strings.TrimSpace(*p.Remaining)
	}
	if p.LastCheck != nil {
		e.LastCheck = strings.TrimSpace(*p.LastCheck)
	}
	return e
}

func (s *Service) UpdateEquipment(ctx context.Context, id int, patch EquipmentPatch) (models.Equipment, bool, error) {
	if err := patch.validate(); err != nil {
		return models.Equipment{}, false, err
	}
	if err := s.wait(ctx, s.delays.Write); err != nil {
		return models.Equipment{}, false, err
	}
	e, ok := s.equipment.Update(id, patch.apply)
	if ok {
		s.logger.InfoContext(ctx, "equipment updated", slog.Int("id", id))
	}
	return e, ok, nil
}

// UpdatePartQty sets the used quantity and, when total is not nil, the total quantity.
// The remaining quantity is recomputed from them.
func (s *Service) UpdatePartQty(ctx context.Context, id, used int, total *int) (models.Part, bool, error) {
	if err := s.wait(ctx, s.delays.Write); err != nil {
		return models.Part{}, false, err
	}

	var verr error
	p, ok := s.parts.Update(id, func(p models.Part) models.Part {
		t := p.TotalQty
		if total != nil {
			t = *total
		}
		if verr = validQty(used, t); verr != nil {
			return p
		}
		p.TotalQty = t
		p.UsedQty = used
		p.RemainQty = max(0, t-used)
		return p
	})
	if verr != nil {
		return models.Part{}, false, verr
	}
	if ok {
		s.logger.InfoContext(ctx, "part quantity changed",
			slog.Int("id", id), slog.Int("used", p.UsedQty), slog.Int("remain", p.RemainQty))
	}
	return p, ok, nil
}
