// Package export renders normalized records into third-party text formats.
// Every function is deterministic and keeps the caller's record order.
package export

import (
	"strings"

	"steam-extract/pkg/models"
)

// Input is everything any format may need.
type Input struct {
	AppID        string
	Dlc          []models.DlcRecord
	Achievements []models.AchievementRecord
	Depots       []models.DepotRecord
}

type Format struct {
	Name        string
	Filename    string
	ContentType string
	Render      func(Input) (string, error)
}

var formats = []Format{
	{
		Name:        "creamapi",
		Filename:    "cream_api.ini",
		ContentType: "text/plain; charset=utf-8",
		Render:      func(in Input) (string, error) { return CreamAPI(in.AppID, in.Dlc), nil },
	},
	{
		Name:        "achievements-ini",
		Filename:    "achievements.ini",
		ContentType: "text/plain; charset=utf-8",
		Render:      func(in Input) (string, error) { return AchievementsINI(in.Achievements), nil },
	},
	{
		Name:        "achievements-json",
		Filename:    "achievements.json",
		ContentType: "application/json",
		Render:      func(in Input) (string, error) { return AchievementsJSON(in.Achievements) },
	},
	{
		Name:        "depots-csv",
		Filename:    "depots.csv",
		ContentType: "text/csv; charset=utf-8",
		Render:      func(in Input) (string, error) { return DepotsCSV(in.Depots), nil },
	},
}

func Lookup(name string) (Format, error) {
	for _, f := range formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, models.ErrUnknownFormat
}

func Names() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.Name
	}
	return names
}

type lines struct {
	strings.Builder
}

func (l *lines) line(parts ...string) {
	for _, p := range parts {
		l.WriteString(p)
	}
	l.WriteByte('\n')
}
