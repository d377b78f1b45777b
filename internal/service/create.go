package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/glekoz/rvdesk/internal/models"
)

const defaultAuthor = "관리자"

type NoticeInput struct {
	Title    string
	Author   string
	Date     string
	Category models.NoticeCategory
	Content  string
}

type EquipmentInput struct {
	Name      string
	Status    models.EquipmentStatus
	Usage     float64
	Remaining string
	LastCheck string
}

type PartInput struct {
	Name          string
	PartNo        string
	Equipment     string
	Type          models.PartType
	UnitPrice     int
	TotalQty      int
	UsedQty       int
	RemainQty     *int
	FirstShipDate string
}

type InspectionInput struct {
	Equipment    string
	StartDate    string
	Institution  string
	User         string
	UseStartDate string
	UseEndDate   string
	Registrant   string
	Purpose      string
}

type OperationInput struct {
	Equipment  string
	StartDate  string
	EndDate    string
	UseTime    string
	Activity   string
	ActualUser string
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func (s *Service) CreateNotice(ctx context.Context, in NoticeInput) (models.Notice, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Notice{}, invalid("제목을 입력하세요")
	}
	category := in.Category
	if category == "" {
		category = models.CategoryAnnouncement
	}
	if !category.Valid() {
		return models.Notice{}, invalid(fmt.Sprintf("알 수 없는 분류: %s", in.Category))
	}
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.Notice{}, err
	}

	n := s.notices.Create(func(id int) models.Notice {
		return models.Notice{
			ID:       id,
			Title:    title,
			Author:   orDefault(in.Author, defaultAuthor),
			Date:     orDefault(in.Date, s.today()),
			Category: category,
			Content:  in.Content,
		}
	})
	s.logger.InfoContext(ctx, "notice created", slog.Int("id", n.ID))
	return n, nil
}

func validUsage(u float64) bool {
	return !math.IsNaN(u) && u >= 0 && u <= 100
}

func (s *Service) CreateEquipment(ctx context.Context, in EquipmentInput) (models.Equipment, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Equipment{}, invalid("장비명을 입력하세요.")
	}
	if !validUsage(in.Usage) {
		return models.Equipment{}, invalid("사용률은 0~100 사이여야 합니다.")
	}
	status := in.Status
	if status == "" {
		status = models.StatusStandby
	}
	if !status.Valid() {
		return models.Equipment{}, invalid(fmt.Sprintf("알 수 없는 상태: %s", in.Status))
	}
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.Equipment{}, err
	}

	e := s.equipment.Create(func(id int) models.Equipment {
		return models.Equipment{
			ID:        id,
			Name:      name,
			Status:    status,
			Usage:     int(math.Round(in.Usage)),
			Remaining: orDefault(in.Remaining, "0h"),
			LastCheck: orDefault(in.LastCheck, s.today()),
		}
	})
	s.logger.InfoContext(ctx, "equipment created", slog.Int("id", e.ID))
	return e, nil
}

func validQty(used, total int) error {
	if total < 0 || used < 0 {
		return invalid("수량은 0 이상이어야 합니다.")
	}
	if used > total {
		return invalid("사용 수량이 총 수량을 초과할 수 없습니다.")
	}
	return nil
}

func (s *Service) CreatePart(ctx context.Context, in PartInput) (models.Part, error) {
	name := strings.TrimSpace(in.Name)
	partNo := strings.TrimSpace(in.PartNo)
	equipment := strings.TrimSpace(in.Equipment)
	switch {
	case name == "":
		return models.Part{}, invalid("부속품명을 입력하세요.")
	case partNo == "":
		return models.Part{}, invalid("파트번호를 입력하세요.")
	case equipment == "":
		return models.Part{}, invalid("소유 장비를 입력하세요.")
	}
	if err := validQty(in.UsedQty, in.TotalQty); err != nil {
		return models.Part{}, err
	}
	if in.UnitPrice < 0 {
		return models.Part{}, invalid("단가는 0 이상이어야 합니다.")
	}
	remain := max(0, in.TotalQty-in.UsedQty)
	if in.RemainQty != nil {
		if *in.RemainQty < 0 {
			return models.Part{}, invalid("수량은 0 이상이어야 합니다.")
		}
		remain = *in.RemainQty
	}
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.Part{}, err
	}

	p := s.parts.Create(func(id int) models.Part {
		return models.Part{
			ID:            id,
			Name:          name,
			PartNo:        partNo,
			Equipment:     equipment,
			Type:          models.ToPartType(string(in.Type)),
			UnitPrice:     in.UnitPrice,
			TotalQty:      in.TotalQty,
			UsedQty:       in.UsedQty,
			RemainQty:     remain,
			FirstShipDate: strings.TrimSpace(in.FirstShipDate),
		}
	})
	s.logger.InfoContext(ctx, "part created", slog.Int("id", p.ID), slog.String("stock", string(p.Stock())))
	return p, nil
}

func (s *Service) CreateInspectionLog(ctx context.Context, in InspectionInput) (models.InspectionLog, error) {
	in.Equipment = strings.TrimSpace(in.Equipment)
	in.Institution = strings.TrimSpace(in.Institution)
	in.User = strings.TrimSpace(in.User)
	switch {
	case in.Equipment == "":
		return models.InspectionLog{}, invalid("장비명을 입력하세요.")
	case in.Institution == "":
		return models.InspectionLog{}, invalid("기관을 입력하세요.")
	case in.User == "":
		return models.InspectionLog{}, invalid("사용자를 입력하세요.")
	}
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.InspectionLog{}, err
	}

	l := s.inspections.Create(func(id int) models.InspectionLog {
		return models.InspectionLog{
			ID:           id,
			Equipment:    in.Equipment,
			StartDate:    strings.TrimSpace(in.StartDate),
			Institution:  in.Institution,
			User:         in.User,
			UseStartDate: strings.TrimSpace(in.UseStartDate),
			UseEndDate:   strings.TrimSpace(in.UseEndDate),
			Registrant:   strings.TrimSpace(in.Registrant),
			Purpose:      strings.TrimSpace(in.Purpose),
		}
	})
	s.logger.InfoContext(ctx, "inspection log created", slog.Int("id", l.ID))
	return l, nil
}

func (s *Service) CreateOperationLog(ctx context.Context, in OperationInput) (models.OperationLog, error) {
	in.Equipment = strings.TrimSpace(in.Equipment)
	in.ActualUser = strings.TrimSpace(in.ActualUser)
	switch {
	case in.Equipment == "":
		return models.OperationLog{}, invalid("장비명을 입력하세요.")
	case in.ActualUser == "":
		return models.OperationLog{}, invalid("실사용자를 입력하세요.")
	}
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.OperationLog{}, err
	}

	l := s.operations.Create(func(id int) models.OperationLog {
		return models.OperationLog{
			ID:         id,
			Equipment:  in.Equipment,
			StartDate:  strings.TrimSpace(in.StartDate),
			EndDate:    strings.TrimSpace(in.EndDate),
			UseTime:    strings.TrimSpace(in.UseTime),
			Activity:   strings.TrimSpace(in.Activity),
			ActualUser: in.ActualUser,
		}
	})
	s.logger.InfoContext(ctx, "operation log created", slog.Int("id", l.ID))
	return l, nil
}
