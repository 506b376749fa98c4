// Package repo provides postgres access for content search
package repo

import (
	"context"

	"channelhub/internal/core/access"
	"channelhub/internal/core/query"
	"channelhub/internal/modkit/repokit"
	"channelhub/internal/platform/store"
)

// Filter is one page request against the joined content and profile corpus
type Filter struct {
	Expr   query.Expr
	Scope  access.Scope
	Limit  int
	Offset int
}

// RowItem is a content row joined with its owner profile
type RowItem struct {
	ID          int64
	VideoID     string
	Link        string
	Title       string
	Description string
	Tags        []string
	Status      string
	Visibility  string

	OwnerID     int64
	UserNumber  int64
	Email       string
	FullName    string
	ProfileName string
	Handle      string
	Login       string
	Location    string
	Slug        string
	Phone       string
}

// Page is a slice of matches plus the total match count
type Page struct {
	Rows  []RowItem
	Total int64
}

// Repo defines the repository contract for content search
type Repo interface {
	Find(ctx context.Context, f Filter) (Page, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// columns is the allowlist search fields compile against
var columns = query.Columns{
	query.FieldEmail:       {SQL: "p.email"},
	query.FieldEmailDomain: {SQL: "split_part(p.email, '@', 2)"},
	query.FieldFullName:    {SQL: "p.full_name"},
	query.FieldUserNumber:  {SQL: "p.user_number", Kind: query.KindNumeric},
	query.FieldID:          {SQL: "c.id", Kind: query.KindNumeric},
	query.FieldProfileName: {SQL: "p.profile_name"},
	query.FieldHandle:      {SQL: "p.handle"},
	query.FieldLogin:       {SQL: "p.login"},
	query.FieldLocation:    {SQL: "p.location"},
	query.FieldSlug:        {SQL: "p.slug"},
	query.FieldPhone:       {SQL: "p.phone"},
	query.FieldTitle:       {SQL: "c.title"},
	query.FieldDescription: {SQL: "c.description"},
	query.FieldTags:        {SQL: "array_to_string(c.tags, ' ')"},
	query.FieldVideoID:     {SQL: "coalesce(c.video_id, '')"},
	query.FieldLink:        {SQL: "c.link"},
}

const fromItems = `
from content_items c
join profiles p on p.id = c.owner_id`

const selectItems = `
select c.id, coalesce(c.video_id, ''), c.link, c.title, c.description, c.tags, c.status, c.visibility,
p.id, p.user_number, p.email, p.full_name, p.profile_name, p.handle, p.login, p.location, p.slug, p.phone,
count(*) over () as total` + fromItems

// scopeSQL renders the visibility filter
// owner id 0 never matches a row so guests see approved public content only
func scopeSQL(s access.Scope, args *query.Args) string {
	if s.All {
		return "TRUE"
	}
	return "(c.owner_id = " + args.Add(s.OwnerID) +
		" OR (c.status = " + args.Add(access.StatusApproved) +
		" AND c.visibility = " + args.Add(access.VisibilityPublic) + "))"
}

// buildWhere returns the where clause and its arguments
func buildWhere(f Filter) (string, *query.Args, error) {
	args := query.NewArgs()
	scope := scopeSQL(f.Scope, args)
	pred, err := query.Compile(f.Expr, columns, args)
	if err != nil {
		return "", nil, err
	}
	return "\nwhere " + scope + " AND " + pred, args, nil
}

type foundRow struct {
	RowItem
	total int64
}

func scanFound(r store.Row) (foundRow, error) {
	var f foundRow
	err := r.Scan(
		&f.ID,
		&f.VideoID,
		&f.Link,
		&f.Title,
		&f.Description,
		&f.Tags,
		&f.Status,
		&f.Visibility,
		&f.OwnerID,
		&f.UserNumber,
		&f.Email,
		&f.FullName,
		&f.ProfileName,
		&f.Handle,
		&f.Login,
		&f.Location,
		&f.Slug,
		&f.Phone,
		&f.total,
	)
	return f, err
}

func (r *queries) Find(ctx context.Context, f Filter) (Page, error) {
	where, args, err := buildWhere(f)
	if err != nil {
		return Page{}, err
	}
	whereArgs := len(args.Values())

	sql := selectItems + where +
		"\norder by c.created_at desc, c.id desc" +
		"\nlimit " + args.Add(f.Limit) + " offset " + args.Add(f.Offset)

	found, err := store.Many(ctx, r.q, scanFound, sql, args.Values()...)
	if err != nil {
		return Page{}, err
	}

	p := Page{Rows: make([]RowItem, 0, len(found))}
	for _, fr := range found {
		p.Rows = append(p.Rows, fr.RowItem)
		p.Total = fr.total
	}

	// paging past the end leaves no row to carry the window count
	if len(found) == 0 && f.Offset > 0 {
		p.Total, err = store.Scalar[int64](ctx, r.q, "select count(*)"+fromItems+where, args.Values()[:whereArgs]...)
		if err != nil {
			return Page{}, err
		}
	}
	return p, nil
}
