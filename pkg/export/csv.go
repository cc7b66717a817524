package export

import (
	"strings"

	"steam-extract/pkg/models"
)

const depotHeader = "depot_id,name,manifests,os_list"

// DepotsCSV quotes every data field. encoding/csv only quotes when needed,
// which the consuming tools do not accept.
func DepotsCSV(depots []models.DepotRecord) string {
	var b lines
	b.line(depotHeader)
	for _, d := range depots {
		b.line(quote(d.ID), ",", quote(d.Name), ",", quote(d.Manifests), ",", quote(d.OSList))
	}
	return b.String()
}

func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
