// Package domain holds distribution request, result and record types
package domain

import "time"

// distribution record statuses
const (
	StatusActive  = "active"
	StatusPaused  = "paused"
	StatusExpired = "expired"
)

// priority bounds
const (
	MinPriority = 0
	MaxPriority = 100
)

// MaxCategoryLen bounds DistributeInput.Category
const MaxCategoryLen = 64

// DistributeInput asks for one content item to be placed on many channels
// ContentID is a video id or, when numeric, the internal content id
type DistributeInput struct {
	ContentID string     `json:"contentId" validate:"required,max=128"`
	Channels  []string   `json:"channels" validate:"omitempty,max=500,dive,max=128"`
	Bundles   []string   `json:"bundles" validate:"omitempty,max=100,dive,max=128"`
	OTTIDs    []string   `json:"ottIds" validate:"omitempty,max=100,dive,max=128"`
	Category  string     `json:"category" validate:"required,max=64"`
	PublishAt *time.Time `json:"publishAt,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Priority  int        `json:"priority" validate:"min=0,max=100"`
}

// DistributeResult reports the per channel outcome of one batch
type DistributeResult struct {
	Success             bool     `json:"success"`
	BatchID             string   `json:"batchId"`
	DistributedChannels []string `json:"distributedChannels"`
	SkippedChannels     []string `json:"skippedChannels"`
	Category            string   `json:"category"`
	OTTEchoed           []string `json:"ottEchoed"`
}

// Record is one stored distribution
type Record struct {
	ContentID   int64      `json:"contentId"`
	ChannelSlug string     `json:"channelSlug"`
	Category    string     `json:"category"`
	PublishAt   time.Time  `json:"publishAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	Status      string     `json:"status"`
	Priority    int        `json:"priority"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ListResult is the response of ListDistributions
type ListResult struct {
	ContentID int64    `json:"contentId"`
	Records   []Record `json:"records"`
}
