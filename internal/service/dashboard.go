package service

import (
	"context"

	"github.com/glekoz/rvdesk/internal/models"
	"github.com/glekoz/rvdesk/internal/query"
	"golang.org/x/sync/errgroup"
)

const (
	recentEquipment = 4
	recentParts     = 5
	recentNotices   = 5
)

func recent[T query.Record, K comparable](c *query.Collection[T, K], n int) ([]T, error) {
	p := query.DefaultParams(c.Fields())
	p.PageSize = n
	page, err := c.Query(p)
	return page.Items, err
}

// Dashboard collects the summary shown on the main screen. Each collection is read
// separately, so the figures are not one consistent snapshot.
func (s *Service) Dashboard(ctx context.Context) (models.Dashboard, error) {
	if err := s.wait(ctx, s.delays.Read); err != nil {
		return models.Dashboard{}, err
	}

	var d models.Dashboard
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, e := range s.equipment.Snapshot() {
			d.Equipment.Total++
			switch e.Status {
			case models.StatusActive:
				d.Equipment.Active++
			case models.StatusStandby:
				d.Equipment.Standby++
			case models.StatusInactive:
				d.Equipment.Inactive++
			}
		}
		items, err := recent(s.equipment, recentEquipment)
		d.RecentEquipment = items
		return err
	})
	g.Go(func() error {
		for _, p := range s.parts.Snapshot() {
			if p.Stock() == models.StockLow {
				d.LowStockParts++
			}
		}
		items, err := recent(s.parts, recentParts)
		d.RecentParts = items
		return err
	})
	g.Go(func() error {
		items, err := recent(s.notices, recentNotices)
		d.RecentNotices = items
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.ErrorContext(ctx, "dashboard failed", "error", err)
		return models.Dashboard{}, err
	}
	return d, nil
}
