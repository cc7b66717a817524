package pipeline

import (
	"context"
	"errors"
	"log"

	"steam-extract/pkg/export"
	"steam-extract/pkg/logger"
	"steam-extract/pkg/models"
	"steam-extract/pkg/reconcile"
	"steam-extract/pkg/scrapers/steamdb"
)

type Fetcher interface {
	Fetch(ctx context.Context, appID string, force bool) (*models.StoreRecord, error)
}

type PageSource interface {
	Page(ctx context.Context, appID string) (*steamdb.Page, error)
}

// State is the assembled view of one refresh. Record is nil and Error set
// when the fetch failed; section lists are empty when the page lacked them.
type State struct {
	AppID        string                     `json:"appId"`
	Record       *models.StoreRecord        `json:"record"`
	Error        string                     `json:"error,omitempty"`
	Dlc          []models.DlcRecord         `json:"dlc"`
	Achievements []models.AchievementRecord `json:"achievements"`
	Depots       []models.DepotRecord       `json:"depots"`
}

// ExportInput returns the exporter input for this state.
func (s *State) ExportInput() export.Input {
	return export.Input{
		AppID:        s.AppID,
		Dlc:          s.Dlc,
		Achievements: s.Achievements,
		Depots:       s.Depots,
	}
}

type Service struct {
	fetcher Fetcher
	pages   PageSource
}

// NewService wires the pipeline. pages may be nil when no catalog page is
// available, in which case only API data is used.
func NewService(fetcher Fetcher, pages PageSource) *Service {
	return &Service{fetcher: fetcher, pages: pages}
}

// Refresh fetches the record, scrapes the catalog page and reconciles the
// DLC list. A fetch failure is reported in State.Error, not as an error;
// the only returned error is models.ErrSuperseded.
func (s *Service) Refresh(ctx context.Context, appID string, force bool) (*State, error) {
	if appID == "" {
		return nil, models.ErrNoSubject
	}

	state := &State{AppID: appID}

	rec, err := s.fetcher.Fetch(ctx, appID, force)
	switch {
	case errors.Is(err, models.ErrSuperseded):
		return nil, err
	case err != nil:
		log.Printf("Error fetching %s: %v", appID, err)
		state.Error = err.Error()
	default:
		state.Record = rec
	}

	snap := s.scrape(ctx, appID)
	state.Achievements = snap.Achievements
	state.Depots = snap.Depots

	var apiIDs []string
	if state.Record != nil {
		apiIDs = state.Record.DLC
	}
	state.Dlc = reconcile.Dlc(snap.Dlc, apiIDs)

	return state, nil
}

// Apply folds an observed snapshot into a copy of state.
func Apply(state *State, snap steamdb.Snapshot) *State {
	next := *state
	var apiIDs []string
	if state.Record != nil {
		apiIDs = state.Record.DLC
	}
	next.Dlc = reconcile.Dlc(snap.Dlc, apiIDs)
	next.Achievements = snap.Achievements
	next.Depots = snap.Depots
	return &next
}

func (s *Service) scrape(ctx context.Context, appID string) steamdb.Snapshot {
	empty := steamdb.Snapshot{
		Dlc:          []models.DlcRecord{},
		Achievements: []models.AchievementRecord{},
		Depots:       []models.DepotRecord{},
	}
	if s.pages == nil {
		return empty
	}

	page, err := s.pages.Page(ctx, appID)
	if err != nil {
		logger.Warnf("Catalog page for %s unavailable: %v", appID, err)
		return empty
	}
	return steamdb.Collect(page)
}
