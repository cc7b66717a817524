package models

// StoreRecord is the normalized appdetails payload for one app.
// A refresh builds a new record; existing ones are never mutated.
type StoreRecord struct {
	AppID         string         `json:"appId"`
	Name          string         `json:"name"`
	Type          string         `json:"type"`
	ReleaseDate   string         `json:"releaseDate"`
	IsReleased    bool           `json:"isReleased"`
	Price         string         `json:"price"`
	PriceOverview *PriceOverview `json:"priceOverview,omitempty"`
	Developers    []string       `json:"developers"`
	Publishers    []string       `json:"publishers"`
	Platforms     Platforms      `json:"platforms"`
	DLC           []string       `json:"dlc"`
	Packages      []Package      `json:"packages"`
	FetchedAt     string         `json:"fetchedAt"`
}

// PriceUnavailable is the Price summary used when the API reports no price.
const PriceUnavailable = "unavailable"

type PriceOverview struct {
	Currency         string `json:"currency"`
	Initial          int    `json:"initial"`
	Final            int    `json:"final"`
	DiscountPercent  int    `json:"discount_percent"`
	InitialFormatted string `json:"initial_formatted"`
	FinalFormatted   string `json:"final_formatted"`
}

type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

// Package is one purchasable sub flattened out of the API's package groups.
type Package struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Discount int     `json:"discount"`
}
