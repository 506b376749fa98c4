// Package domain holds channel search types
package domain

import "channelhub/internal/core/geo"

// search types reported by ChannelSearchResult
const (
	SearchTypeZip  = "zip"
	SearchTypeText = "text"
)

// Channel is a distribution target as returned by channel search
type Channel struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Region       string   `json:"region"`
	Country      string   `json:"country"`
	Population   int64    `json:"population"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	CustomDomain string   `json:"customDomain,omitempty"`

	// Distance in miles from the resolved postal code, zip searches only
	Distance *float64 `json:"distance,omitempty"`
}

// ChannelSearchResult is the response of SearchChannels
type ChannelSearchResult struct {
	Channels   []Channel  `json:"channels"`
	SearchType string     `json:"searchType"`
	Zip        string     `json:"zip,omitempty"`
	Radius     int        `json:"radius,omitempty"`
	Origin     *geo.Point `json:"origin,omitempty"`
	// Fallback is set when the code itself was unknown and a code sharing its prefix was used
	Fallback bool `json:"fallback,omitempty"`
}
