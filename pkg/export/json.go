package export

import (
	"bytes"
	"encoding/json"

	"steam-extract/pkg/models"
)

type achievementJSON struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconGray    string `json:"iconGray"`
}

// AchievementsJSON renders a 2-space indented array. URLs are written as-is,
// without HTML escaping.
func AchievementsJSON(achievements []models.AchievementRecord) (string, error) {
	out := make([]achievementJSON, len(achievements))
	for i, a := range achievements {
		out[i] = achievementJSON(a)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return buf.String(), nil
}
