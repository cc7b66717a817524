package reconcile

import "steam-extract/pkg/models"

// Dlc picks one source for the DLC list. Scraped records win whenever there
// are any; otherwise the API's bare ids are wrapped with placeholder names.
// The two sources are never merged per id, so a partially rendered DLC
// table under-reports.
func Dlc(scraped []models.DlcRecord, apiIDs []string) []models.DlcRecord {
	if len(scraped) > 0 {
		out := make([]models.DlcRecord, len(scraped))
		copy(out, scraped)
		return out
	}

	out := make([]models.DlcRecord, 0, len(apiIDs))
	for _, id := range apiIDs {
		out = append(out, models.NewDlcRecord(id, ""))
	}
	return out
}
