// Package domain holds DTOs for content search http and service contracts
package domain

import (
	"strconv"
	"strings"

	"channelhub/internal/core/query"
)

// SearchInput is the content search request
type SearchInput struct {
	Q      string `json:"q" validate:"max=256" example:"\"john doe\""`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	Offset int    `json:"offset,omitempty" validate:"omitempty,min=0" example:"0"`
}

// Owner is the profile that owns a content item
type Owner struct {
	ID          int64  `json:"id"`
	UserNumber  int64  `json:"user_number"`
	Email       string `json:"email"`
	FullName    string `json:"full_name"`
	ProfileName string `json:"profile_name"`
	Handle      string `json:"handle"`
	Login       string `json:"login"`
	Location    string `json:"location"`
	Slug        string `json:"slug"`
	Phone       string `json:"phone,omitempty"`
}

// Item is one content search hit with its owner
type Item struct {
	ID          int64    `json:"id" example:"1042"`
	VideoID     string   `json:"video_id,omitempty" example:"vid-8812"`
	Link        string   `json:"link,omitempty"`
	Title       string   `json:"title" example:"Harbour lights"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" example:"approved"`
	Visibility  string   `json:"visibility" example:"public"`
	Owner       Owner    `json:"owner"`
}

// SearchResult is the page returned by Search
// MatchMode is the parse mode, the winning numeric strategy, "none" or "all"
type SearchResult struct {
	Items        []Item `json:"items"`
	MatchMode    string `json:"match_mode" example:"and"`
	TotalMatched int64  `json:"total_matched" example:"1"`
	Limit        int    `json:"limit" example:"50"`
	Offset       int    `json:"offset" example:"0"`
}

// MatchAll is reported when the query carried nothing to filter on
const MatchAll = "all"

// Text implements query.Record so loaded items can be filtered in memory
func (i Item) Text(f query.Field) string {
	switch f {
	case query.FieldEmail:
		return i.Owner.Email
	case query.FieldEmailDomain:
		if at := strings.LastIndexByte(i.Owner.Email, '@'); at >= 0 {
			return i.Owner.Email[at+1:]
		}
		return ""
	case query.FieldFullName:
		return i.Owner.FullName
	case query.FieldUserNumber:
		return strconv.FormatInt(i.Owner.UserNumber, 10)
	case query.FieldID:
		return strconv.FormatInt(i.ID, 10)
	case query.FieldProfileName:
		return i.Owner.ProfileName
	case query.FieldHandle:
		return i.Owner.Handle
	case query.FieldLogin:
		return i.Owner.Login
	case query.FieldLocation:
		return i.Owner.Location
	case query.FieldSlug:
		return i.Owner.Slug
	case query.FieldPhone:
		return i.Owner.Phone
	case query.FieldTitle:
		return i.Title
	case query.FieldDescription:
		return i.Description
	case query.FieldTags:
		return strings.Join(i.Tags, " ")
	case query.FieldVideoID:
		return i.VideoID
	case query.FieldLink:
		return i.Link
	default:
		return ""
	}
}
