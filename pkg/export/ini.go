package export

import (
	"strconv"

	"steam-extract/pkg/models"
)

const creamAPIHeader = "; CreamAPI configuration generated by steam-extract"

func CreamAPI(appID string, dlc []models.DlcRecord) string {
	var b lines
	b.line(creamAPIHeader)
	b.line("[steam]")
	b.line("appid = ", appID)
	b.line()
	b.line("[dlc]")
	for i, d := range dlc {
		b.line("dlc", strconv.Itoa(i+1), " = ", d.ID, " ; ", d.Name)
	}
	return b.String()
}

func AchievementsINI(achievements []models.AchievementRecord) string {
	var b lines
	b.line("[Achievements]")
	for _, a := range achievements {
		b.line(a.Name, "=1")
	}
	return b.String()
}
