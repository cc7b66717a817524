package steamapi

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"steam-extract/pkg/models"
)

// envelope is the per-app wrapper appdetails returns under the app id key.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// AppData is the subset of the appdetails "data" object the filters request.
type AppData struct {
	Name          string                `json:"name"`
	Type          string                `json:"type"`
	ReleaseDate   *ReleaseDate          `json:"release_date"`
	PriceOverview *models.PriceOverview `json:"price_overview"`
	Developers    []string              `json:"developers"`
	Publishers    []string              `json:"publishers"`
	Platforms     map[string]bool       `json:"platforms"`
	DLC           []json.RawMessage     `json:"dlc"`
	PackageGroups []PackageGroup        `json:"package_groups"`
}

type ReleaseDate struct {
	// ComingSoon stays raw: only a literal false means released.
	ComingSoon json.RawMessage `json:"coming_soon"`
	Date       string          `json:"date"`
}

func (rd *ReleaseDate) released() bool {
	return string(bytes.TrimSpace(rd.ComingSoon)) == "false"
}

type PackageGroup struct {
	Name string `json:"name"`
	Subs []Sub  `json:"subs"`
}

type Sub struct {
	PackageID                json.RawMessage `json:"packageid"`
	OptionText               string          `json:"option_text"`
	PercentSavings           Number          `json:"percent_savings"`
	PriceInCentsWithDiscount Number          `json:"price_in_cents_with_discount"`
}

// ID accepts either a JSON number or a JSON string and keeps its text form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// Number accepts a JSON number or a numeric string. Any other value
// decodes as zero instead of failing the whole payload.
type Number float64

func (n *Number) UnmarshalJSON(b []byte) error {
	text := string(bytes.TrimSpace(b))
	if len(text) > 0 && text[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*n = 0
			return nil
		}
		text = strings.TrimSpace(s)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*n = 0
		return nil
	}
	*n = Number(f)
	return nil
}

// parseID returns the id held by raw, or false when raw is not a number or
// a string of digits.
func parseID(raw json.RawMessage) (string, bool) {
	var id ID
	if err := json.Unmarshal(raw, &id); err != nil {
		return "", false
	}
	if !digits.MatchString(string(id)) {
		return "", false
	}
	return string(id), true
}

const isoMillis = "2006-01-02T15:04:05.000Z"

var digits = regexp.MustCompile(`^\d+$`)

// Normalize maps one app's data object into a StoreRecord. Only
// coming_soon == false marks the app as released.
func Normalize(appID string, data AppData, fetchedAt time.Time) *models.StoreRecord {
	rec := &models.StoreRecord{
		AppID:         appID,
		Name:          data.Name,
		Type:          data.Type,
		Price:         models.PriceUnavailable,
		PriceOverview: data.PriceOverview,
		Developers:    nonNil(data.Developers),
		Publishers:    nonNil(data.Publishers),
		Platforms: models.Platforms{
			Windows: data.Platforms["windows"],
			Mac:     data.Platforms["mac"],
			Linux:   data.Platforms["linux"],
		},
		DLC:       make([]string, 0, len(data.DLC)),
		Packages:  []models.Package{},
		FetchedAt: fetchedAt.UTC().Format(isoMillis),
	}

	if rd := data.ReleaseDate; rd != nil {
		rec.ReleaseDate = rd.Date
		rec.IsReleased = rd.released()
	}

	if po := data.PriceOverview; po != nil && po.FinalFormatted != "" {
		rec.Price = po.FinalFormatted
	}

	for _, raw := range data.DLC {
		if id, ok := parseID(raw); ok {
			rec.DLC = append(rec.DLC, id)
		}
	}

	for _, group := range data.PackageGroups {
		for _, sub := range group.Subs {
			id, _ := parseID(sub.PackageID)
			rec.Packages = append(rec.Packages, models.Package{
				ID:       id,
				Title:    sub.OptionText,
				Price:    float64(sub.PriceInCentsWithDiscount) / 100,
				Discount: int(math.Round(float64(sub.PercentSavings))),
			})
		}
	}

	return rec
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

