package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/glekoz/rvdesk/internal/fixtures"
	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"github.com/glekoz/rvdesk/internal/views"
)

type Service struct {
	notices     *query.Collection[models.Notice, models.NoticeTarget]
	equipment   *query.Collection[models.Equipment, models.EquipmentTarget]
	parts       *query.Collection[models.Part, models.PartTarget]
	inspections *query.Collection[models.InspectionLog, models.InspectionTarget]
	operations  *query.Collection[models.OperationLog, models.OperationTarget]
	failures    *query.Collection[models.ImportFailure, models.ImportFailureTarget]

	sleeper Sleeper
	delays  Delays
	now     func() time.Time
	logger  *slog.Logger
}

type Option func(*Service)

func WithSleeper(s Sleeper) Option {
	return func(svc *Service) { svc.sleeper = s }
}

func WithDelays(d Delays) Option {
	return func(svc *Service) { svc.delays = d }
}

// WithClock sets the source of "today" for default dates and of import failure times.
func WithClock(now func() time.Time) Option {
	return func(svc *Service) { svc.now = now }
}

func New(seed fixtures.Set, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		notices:     query.NewCollection(models.NoticeFields(), seed.Notices),
		equipment:   query.NewCollection(models.EquipmentFields(), seed.Equipment),
		parts:       query.NewCollection(models.PartFields(), seed.Parts),
		inspections: query.NewCollection(models.InspectionFields(), seed.InspectionLogs),
		operations:  query.NewCollection(models.OperationFields(), seed.OperationLogs),
		failures:    query.NewCollection(models.ImportFailureFields(), nil),
		sleeper:     TimerSleeper{},
		delays:      DefaultDelays,
		now:         time.Now,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) wait(ctx context.Context, d time.Duration) error {
	return s.sleeper.Sleep(ctx, d)
}

func (s *Service) today() string {
	return s.now().Format(time.DateOnly)
}

func list[T query.Record, K comparable](ctx context.Context, s *Service, c *query.Collection[T, K], p query.Params[K]) (query.Page[T], error) {
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return query.Page[T]{}, err
	}
	page, err := c.Query(p)
	if err != nil {
		s.logger.DebugContext(ctx, "list rejected", slog.String("error", err.Error()))
		return query.Page[T]{}, err
	}
	s.logger.DebugContext(ctx, "list",
		slog.Int("page", page.Page), slog.Int("page_size", page.PageSize), slog.Int("total", page.Total))
	return page, nil
}

func (s *Service) ListNotices(ctx context.Context, p query.Params[models.NoticeTarget]) (query.Page[models.Notice], error) {
	return list(ctx, s, s.notices, p)
}

func (s *Service) ListEquipment(ctx context.Context, p query.Params[models.EquipmentTarget]) (query.Page[models.Equipment], error) {
	return list(ctx, s, s.equipment, p)
}

func (s *Service) ListParts(ctx context.Context, p query.Params[models.PartTarget]) (query.Page[models.Part], error) {
	return list(ctx, s, s.parts, p)
}

func (s *Service) ListInspectionLogs(ctx context.Context, p query.Params[models.InspectionTarget]) (query.Page[models.InspectionLog], error) {
	return list(ctx, s, s.inspections, p)
}

func (s *Service) ListOperationLogs(ctx context.Context, p query.Params[models.OperationTarget]) (query.Page[models.OperationLog], error) {
	return list(ctx, s, s.operations, p)
}

func (s *Service) ListImportFailures(ctx context.Context, p query.Params[models.ImportFailureTarget]) (query.Page[models.ImportFailure], error) {
	return list(ctx, s, s.failures, p)
}

func (s *Service) GetNotice(ctx context.Context, id int) (models.Notice, error) {
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.Notice{}, err
	}
	n, ok := s.notices.Get(id)
	if !ok {
		return models.Notice{}, fmt.Errorf("notice %d: %w", id, ErrNotFound)
	}
	return n, nil
}

// IncreaseViews bumps the view counter. Unknown id changes nothing and returns false.
func (s *Service) IncreaseViews(ctx context.Context, id int) (models.Notice, bool, error) {
	if err := s.wait(ctx, s.delays.Views); err != nil {
		return models.Notice{}, false, err
	}
	n, ok := s.notices.Update(id, func(n models.Notice) models.Notice {
		n.Views++
		return n
	})
	return n, ok, nil
}

// Reset returns every collection to its seed and clears the import failure log.
// Ids handed out before keep being reserved.
func (s *Service) Reset(ctx context.Context) {
	s.notices.Reset()
	s.equipment.Reset()
	s.parts.Reset()
	s.inspections.Reset()
	s.operations.Reset()
	s.failures.Reset()
	s.logger.InfoContext(ctx, "collections reset")
}

// RecordImportFailure appends an entry to the import failure log.
func (s *Service) RecordImportFailure(ctx context.Context, filename, reason string) models.ImportFailure {
	f := s.failures.Create(func(id int) models.ImportFailure {
		return models.ImportFailure{ID: id, Filename: filename, Error: reason, CreatedAt: s.now()}
	})
	s.logger.WarnContext(ctx, "import failed", slog.String("file", filename), slog.String("error", reason))
	return f
}

// Counts returns the current number of records per entity.
func (s *Service) Counts() map[models.Entity]int {
	return map[models.Entity]int{
		models.EntityNotices:        s.notices.Len(),
		models.EntityEquipment:      s.equipment.Len(),
		models.EntityParts:          s.parts.Len(),
		models.EntityInspections:    s.inspections.Len(),
		models.EntityOperations:     s.operations.Len(),
		models.EntityImportFailures: s.failures.Len(),
	}
}

func matching[T query.Record, K comparable](c *query.Collection[T, K], text string, target K) ([]T, error) {
	page, err := c.Query(query.Params[K]{Page: 1, PageSize: math.MaxInt, Text: text, Target: target})
	return page.Items, err
}

func exportGrid[T query.Record, K comparable](c *query.Collection[T, K], parse func(string) (K, error), text, target string, cols func([]T) views.Grid) (views.Grid, error) {
	k, err := parse(target)
	if err != nil {
		return views.Grid{}, err
	}
	items, err := matching(c, text, k)
	if err != nil {
		return views.Grid{}, err
	}
	return cols(items), nil
}

// ExportRows returns every record of entity that matches text/target, newest first,
// with all columns filled in.
func (s *Service) ExportRows(ctx context.Context, entity models.Entity, text, target string) (views.Grid, error) {
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return views.Grid{}, err
	}
	switch entity {
	case models.EntityNotices:
		return exportGrid(s.notices, models.ParseNoticeTarget, text, target, func(items []models.Notice) views.Grid {
			return views.Flatten(views.NoticeColumns(), items)
		})
	case models.EntityEquipment:
		return exportGrid(s.equipment, models.ParseEquipmentTarget, text, target, func(items []models.Equipment) views.Grid {
			return views.Flatten(views.EquipmentColumns(), items)
		})
	case models.EntityParts:
		return exportGrid(s.parts, models.ParsePartTarget, text, target, func(items []models.Part) views.Grid {
			return views.Flatten(views.PartColumns(), items)
		})
	case models.EntityInspections:
		return exportGrid(s.inspections, models.ParseInspectionTarget, text, target, func(items []models.InspectionLog) views.Grid {
			return views.Flatten(views.InspectionColumns(), items)
		})
	case models.EntityOperations:
		return exportGrid(s.operations, models.ParseOperationTarget, text, target, func(items []models.OperationLog) views.Grid {
			return views.Flatten(views.OperationColumns(), items)
		})
	case models.EntityImportFailures:
		return exportGrid(s.failures, models.ParseImportFailureTarget, text, target, func(items []models.ImportFailure) views.Grid {
			return views.Flatten(views.ImportFailureColumns(), items)
		})
	}
	return views.Grid{}, models.ErrUnknownEntity
}
