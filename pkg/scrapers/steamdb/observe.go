package steamdb

import (
	"context"
	"slices"
	"time"

	"steam-extract/pkg/logger"
	"steam-extract/pkg/models"
)

// Snapshot holds the three sections collected from one read of a page.
type Snapshot struct {
	Dlc          []models.DlcRecord
	Achievements []models.AchievementRecord
	Depots       []models.DepotRecord
}

func Collect(p *Page) Snapshot {
	return Snapshot{
		Dlc:          p.CollectDlc(),
		Achievements: p.CollectAchievements(),
		Depots:       p.CollectDepots(),
	}
}

func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.Dlc, o.Dlc) &&
		slices.Equal(s.Achievements, o.Achievements) &&
		slices.Equal(s.Depots, o.Depots)
}

// Source yields the current state of a page that may still be changing.
type Source interface {
	Snapshot(ctx context.Context) (*Page, error)
}

type SourceFunc func(ctx context.Context) (*Page, error)

func (f SourceFunc) Snapshot(ctx context.Context) (*Page, error) {
	return f(ctx)
}

// Observe reads src immediately and then every interval, calling onChange
// whenever the collected sections differ from the last reported ones. A
// failed read is skipped. Observe returns when ctx is done; a non-positive
// interval reads once and returns.
func Observe(ctx context.Context, src Source, interval time.Duration, onChange func(Snapshot)) {
	var last *Snapshot
	read := func() {
		page, err := src.Snapshot(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Warnf("[%s] snapshot failed: %v", Name, err)
			}
			return
		}
		snap := Collect(page)
		if last != nil && snap.Equal(*last) {
			logger.Dedup("[%s] page unchanged", Name)
			return
		}
		last = &snap
		onChange(snap)
	}

	read()
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			read()
		}
	}
}
