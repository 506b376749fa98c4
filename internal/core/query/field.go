// Package query turns raw search input into an explicit predicate tree
//
// Parse produces an Intent, Intent.Expr expands it into an And/Or tree of
// (field, op, value) leaves, and the tree is either evaluated in memory with
// Eval or compiled into a parameterized SQL predicate with Compile
package query

// Field names one searchable attribute of a content record or its owner
type Field string

// Fields known to the matcher. Anything else is rejected by Compile
const (
	FieldEmail       Field = "email"
	FieldEmailDomain Field = "email_domain"
	FieldFullName    Field = "full_name"
	FieldUserNumber  Field = "user_number"
	FieldID          Field = "id"
	FieldProfileName Field = "profile_name"
	FieldHandle      Field = "handle"
	FieldLogin       Field = "login"
	FieldLocation    Field = "location"
	FieldSlug        Field = "slug"
	FieldPhone       Field = "phone"
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldTags        Field = "tags"
	FieldVideoID     Field = "video_id"
	FieldLink        Field = "link"
)

// Kind is the storage type of a field
type Kind uint8

const (
	// KindText fields are compared as is
	KindText Kind = iota
	// KindNumeric fields are cast to text before comparison
	KindNumeric
)

// Searchable is the fixed set of fields free-text terms are matched against
var Searchable = []Field{
	FieldEmail,
	FieldFullName,
	FieldUserNumber,
	FieldID,
	FieldProfileName,
	FieldHandle,
	FieldLogin,
	FieldLocation,
	FieldSlug,
	FieldPhone,
	FieldTitle,
	FieldDescription,
	FieldTags,
}

// handleFields are the targets of an @handle query
var handleFields = []Field{FieldHandle, FieldEmailDomain}

// altIDFields are the alternate identifiers tried by the numeric fast path
var altIDFields = []Field{FieldVideoID, FieldLink}
