// Package repository reads the initial collections from Postgres. Nothing is written back.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/glekoz/rvdesk/config"
	"github.com/glekoz/rvdesk/internal/fixtures"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/repository/db"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Querier - запросы из db, которые нужны для начальной загрузки.
type Querier interface {
	ListNotices(ctx context.Context) ([]db.Notice, error)
	ListEquipment(ctx context.Context) ([]db.Equipment, error)
	ListParts(ctx context.Context) ([]db.Part, error)
	ListInspectionLogs(ctx context.Context) ([]db.InspectionLog, error)
	ListOperationLogs(ctx context.Context) ([]db.OperationLog, error)
}

type Repository struct {
	q Querier
}

func NewPool(ctx context.Context, cfg config.PG) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pool config: %w", err)
	}
	poolCfg.MaxConnLifetime = 30 * time.Minute
	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.PingTimeout = 30 * time.Second
	poolCfg.MaxConns = int32(cfg.PoolMax)
	poolCfg.MinConns = 1
	poolCfg.HealthCheckPeriod = 1 * time.Minute
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	err = p.Ping(ctx)
	if err != nil {
		p.Close()
		return nil, err
	}

	return p, nil
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{q: db.New(pool)}
}

// NewWithQuerier is New for an arbitrary Querier.
func NewWithQuerier(q Querier) *Repository {
	return &Repository{q: q}
}

// Seed implements fixtures.Source. All tables are read in parallel.
func (r *Repository) Seed(ctx context.Context) (fixtures.Set, error) {
	var s fixtures.Set
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := r.q.ListNotices(ctx)
		if err != nil {
			return fmt.Errorf("query notices: %w", err)
		}
		s.Notices = convert(rows, toNotice)
		return nil
	})
	g.Go(func() error {
		rows, err := r.q.ListEquipment(ctx)
		if err != nil {
			return fmt.Errorf("query equipment: %w", err)
		}
		s.Equipment = convert(rows, toEquipment)
		return nil
	})
	g.Go(func() error {
		rows, err := r.q.ListParts(ctx)
		if err != nil {
			return fmt.Errorf("query parts: %w", err)
		}
		s.Parts = convert(rows, toPart)
		return nil
	})
	g.Go(func() error {
		rows, err := r.q.ListInspectionLogs(ctx)
		if err != nil {
			return fmt.Errorf("query inspection logs: %w", err)
		}
		s.InspectionLogs = convert(rows, toInspectionLog)
		return nil
	})
	g.Go(func() error {
		rows, err := r.q.ListOperationLogs(ctx)
		if err != nil {
			return fmt.Errorf("query operation logs: %w", err)
		}
		s.OperationLogs = convert(rows, toOperationLog)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fixtures.Set{}, err
	}
	if err := s.Validate(); err != nil {
		return fixtures.Set{}, err
	}
	return s, nil
}

func convert[R, M any](rows []R, f func(R) M) []M {
	out := make([]M, len(rows))
	for i, row := range rows {
		out[i] = f(row)
	}
	return out
}

func toNotice(row db.Notice) models.Notice {
	return models.Notice{
		ID:       int(row.ID),
		Title:    row.Title,
		Author:   row.Author,
		Date:     dateString(row.Date),
		Views:    int(row.Views),
		Category: models.NoticeCategory(row.Category),
		Content:  textString(row.Content),
	}
}

func toEquipment(row db.Equipment) models.Equipment {
	return models.Equipment{
		ID:        int(row.ID),
		Name:      row.Name,
		Status:    models.EquipmentStatus(row.Status),
		Usage:     int(row.Usage),
		Remaining: textString(row.Remaining),
		LastCheck: dateString(row.LastCheck),
	}
}

func toPart(row db.Part) models.Part {
	return models.Part{
		ID:            int(row.ID),
		Name:          row.Name,
		PartNo:        row.PartNo,
		Equipment:     row.Equipment,
		Type:          models.ToPartType(row.Type),
		UnitPrice:     int(row.UnitPrice),
		TotalQty:      int(row.TotalQty),
		UsedQty:       int(row.UsedQty),
		RemainQty:     int(row.RemainQty),
		FirstShipDate: dateString(row.FirstShipDate),
	}
}

func toInspectionLog(row db.InspectionLog) models.InspectionLog {
	return models.InspectionLog{
		ID:           int(row.ID),
		Equipment:    row.Equipment,
		StartDate:    dateString(row.StartDate),
		Institution:  row.Institution,
		User:         row.User,
		UseStartDate: dateString(row.UseStartDate),
		UseEndDate:   dateString(row.UseEndDate),
		Registrant:   textString(row.Registrant),
		Purpose:      textString(row.Purpose),
	}
}

func toOperationLog(row db.OperationLog) models.OperationLog {
	return models.OperationLog{
		ID:         int(row.ID),
		Equipment:  row.Equipment,
		StartDate:  dateString(row.StartDate),
		EndDate:    dateString(row.EndDate),
		UseTime:    textString(row.UseTime),
		Activity:   textString(row.Activity),
		ActualUser: row.ActualUser,
	}
}

// NULL превращается в пустую строку, как в остальных источниках.
func textString(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func dateString(d pgtype.Date) string {
	if !d.Valid || d.InfinityModifier != pgtype.Finite {
		return ""
	}
	return d.Time.Format(time.DateOnly)
}
