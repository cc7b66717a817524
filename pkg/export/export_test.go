package export

import (
	"encoding/json"
	"strings"
	"testing"

	"steam-extract/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreamAPI(t *testing.T) {
	got := CreamAPI("500", []models.DlcRecord{{ID: "10", Name: "Alpha"}, {ID: "20", Name: "Beta"}})

	want := "; CreamAPI configuration generated by steam-extract\n" +
		"[steam]\n" +
		"appid = 500\n" +
		"\n" +
		"[dlc]\n" +
		"dlc1 = 10 ; Alpha\n" +
		"dlc2 = 20 ; Beta\n"
	assert.Equal(t, want, got)
}

func TestCreamAPIEmpty(t *testing.T) {
	got := CreamAPI("500", nil)

	assert.Equal(t, "; CreamAPI configuration generated by steam-extract\n[steam]\nappid = 500\n\n[dlc]\n", got)
}

func TestAchievementsINI(t *testing.T) {
	got := AchievementsINI([]models.AchievementRecord{{Name: "ACH_WIN"}, {Name: "ACH_LOSE"}})
	assert.Equal(t, "[Achievements]\nACH_WIN=1\nACH_LOSE=1\n", got)

	assert.Equal(t, "[Achievements]\n", AchievementsINI(nil))
}

func TestAchievementsJSON(t *testing.T) {
	got, err := AchievementsJSON([]models.AchievementRecord{{
		Name:        "ACH_WIN",
		DisplayName: "Winner",
		Description: "Win <one>",
		Icon:        "https://cdn/a.jpg?x=1&y=2",
		IconGray:    "https://cdn/a_gray.jpg",
	}})
	require.NoError(t, err)

	want := `[
  {
    "name": "ACH_WIN",
    "displayName": "Winner",
    "description": "Win <one>",
    "icon": "https://cdn/a.jpg?x=1&y=2",
    "iconGray": "https://cdn/a_gray.jpg"
  }
]
`
	assert.Equal(t, want, got)

	var decoded []map[string]string
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, "Winner", decoded[0]["displayName"])
}

func TestAchievementsJSONEmpty(t *testing.T) {
	got, err := AchievementsJSON(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", got)
}

func TestDepotsCSV(t *testing.T) {
	got := DepotsCSV([]models.DepotRecord{
		{ID: "501", Name: `He said "hi"`, Manifests: "123", OSList: "windows"},
		{ID: "502", Name: "Depot 502", Manifests: "", OSList: "linux, macos"},
	})

	want := "depot_id,name,manifests,os_list\n" +
		`"501","He said ""hi""","123","windows"` + "\n" +
		`"502","Depot 502","","linux, macos"` + "\n"
	assert.Equal(t, want, got)
	assert.Contains(t, got, `"He said ""hi"""`)

	assert.Equal(t, "depot_id,name,manifests,os_list\n", DepotsCSV(nil))
}

func TestExportersKeepOrderAndAreDeterministic(t *testing.T) {
	dlc := []models.DlcRecord{{ID: "30", Name: "C"}, {ID: "10", Name: "A"}, {ID: "20", Name: "B"}}

	first := CreamAPI("1", dlc)
	second := CreamAPI("1", dlc)
	assert.Equal(t, first, second)
	assert.Less(t, strings.Index(first, "= 30 ;"), strings.Index(first, "= 10 ;"))
	assert.Less(t, strings.Index(first, "= 10 ;"), strings.Index(first, "= 20 ;"))
}

func TestLookup(t *testing.T) {
	f, err := Lookup("depots-csv")
	require.NoError(t, err)
	assert.Equal(t, "depots.csv", f.Filename)

	out, err := f.Render(Input{Depots: []models.DepotRecord{{ID: "1", Name: "n"}}})
	require.NoError(t, err)
	assert.Equal(t, "depot_id,name,manifests,os_list\n\"1\",\"n\",\"\",\"\"\n", out)

	_, err = Lookup("steam.cfg")
	assert.ErrorIs(t, err, models.ErrUnknownFormat)

	assert.Equal(t, []string{"creamapi", "achievements-ini", "achievements-json", "depots-csv"}, Names())
}
