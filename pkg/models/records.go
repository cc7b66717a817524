package models

import "fmt"

type DlcRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AchievementRecord struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	IconGray    string `json:"iconGray"`
}

type DepotRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Manifests string `json:"manifests"`
	OSList    string `json:"osList"`
}

// FallbackName is the display name used when markup carries none, e.g. "DLC 999".
func FallbackName(kind, id string) string {
	return fmt.Sprintf("%s %s", kind, id)
}

// NewDlcRecord wraps an id, synthesizing the name when it is empty.
func NewDlcRecord(id, name string) DlcRecord {
	if name == "" {
		name = FallbackName("DLC", id)
	}
	return DlcRecord{ID: id, Name: name}
}
