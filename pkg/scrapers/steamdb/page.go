package steamdb

import (
	"io"
	"regexp"
	"strings"

	"steam-extract/pkg/dedup"
	"steam-extract/pkg/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	dlcRows         = "#dlc tr.app"
	achievementRows = "#achievements .achievement"
	depotRows       = "#depots tr.depot, #depots tbody tr"
)

var (
	digits          = regexp.MustCompile(`^\d+$`)
	appLink         = regexp.MustCompile(`/app/(\d+)`)
	innerWhitespace = regexp.MustCompile(`\s+`)
)

// Page is a read-only view over catalog markup. Collect methods only read
// the DOM, so they can be called repeatedly.
type Page struct {
	root *goquery.Selection
}

func NewPage(root *goquery.Selection) *Page {
	return &Page{root: root}
}

func ParsePage(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}
	return NewPage(doc.Selection), nil
}

func (p *Page) CollectDlc() []models.DlcRecord {
	var out []models.DlcRecord
	p.root.Find(dlcRows).Each(func(_ int, row *goquery.Selection) {
		if rec, ok := dlcFromRow(row); ok {
			out = append(out, rec)
		}
	})
	return dedup.ByKey(out, func(r models.DlcRecord) string { return r.ID })
}

func (p *Page) CollectAchievements() []models.AchievementRecord {
	var out []models.AchievementRecord
	p.root.Find(achievementRows).Each(func(_ int, row *goquery.Selection) {
		if rec, ok := achievementFromRow(row); ok {
			out = append(out, rec)
		}
	})
	return dedup.ByKey(out, func(r models.AchievementRecord) string { return r.Name })
}

func (p *Page) CollectDepots() []models.DepotRecord {
	var out []models.DepotRecord
	p.root.Find(depotRows).Each(func(_ int, row *goquery.Selection) {
		if rec, ok := depotFromRow(row); ok {
			out = append(out, rec)
		}
	})
	return dedup.ByKey(out, func(r models.DepotRecord) string { return r.ID })
}

func dlcFromRow(row *goquery.Selection) (models.DlcRecord, bool) {
	id := numericAttr(row, "data-appid")
	if id == "" {
		if href, ok := row.Find(`a[href*="/app/"]`).First().Attr("href"); ok {
			if m := appLink.FindStringSubmatch(href); m != nil {
				id = m[1]
			}
		}
	}
	if id == "" {
		id = numericText(cell(row, 1))
	}
	if id == "" {
		return models.DlcRecord{}, false
	}
	return models.NewDlcRecord(id, text(cell(row, 2))), true
}

func achievementFromRow(row *goquery.Selection) (models.AchievementRecord, bool) {
	name := collapse(row.AttrOr("data-name", ""))
	if name == "" {
		name = text(row.Find(".achievement_api"))
	}
	if name == "" {
		return models.AchievementRecord{}, false
	}

	display := text(row.Find(".achievement_name"))
	if display == "" {
		display = models.FallbackName("Achievement", name)
	}

	img := row.Find("img.achievement_image").First()
	icon := row.AttrOr("data-icon", "")
	if icon == "" {
		icon = img.AttrOr("src", "")
	}
	gray := row.AttrOr("data-icongray", "")
	if gray == "" {
		gray = img.AttrOr("data-gray", "")
	}

	return models.AchievementRecord{
		Name:        name,
		DisplayName: display,
		Description: text(row.Find(".achievement_desc")),
		Icon:        strings.TrimSpace(icon),
		IconGray:    strings.TrimSpace(gray),
	}, true
}

func depotFromRow(row *goquery.Selection) (models.DepotRecord, bool) {
	id := numericAttr(row, "data-depotid")
	if id == "" {
		id = numericText(cell(row, 1))
	}
	if id == "" {
		return models.DepotRecord{}, false
	}

	name := text(cell(row, 2))
	if name == "" {
		name = models.FallbackName("Depot", id)
	}

	return models.DepotRecord{
		ID:        id,
		Name:      name,
		Manifests: text(cell(row, 3)),
		OSList:    text(cell(row, 4)),
	}, true
}

// cell returns the nth (1-based) td of a row.
func cell(row *goquery.Selection, n int) *goquery.Selection {
	return row.Children().Filter("td").Eq(n - 1)
}

func text(sel *goquery.Selection) string {
	return collapse(sel.First().Text())
}

func collapse(s string) string {
	return strings.TrimSpace(innerWhitespace.ReplaceAllString(s, " "))
}

func numericText(sel *goquery.Selection) string {
	t := text(sel)
	if digits.MatchString(t) {
		return t
	}
	return ""
}

func numericAttr(sel *goquery.Selection, attr string) string {
	v := strings.TrimSpace(sel.AttrOr(attr, ""))
	if digits.MatchString(v) {
		return v
	}
	return ""
}
