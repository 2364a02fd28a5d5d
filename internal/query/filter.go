package query

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Mode selects how a multi-value dimension matches: ModeAll requires the
// stored array to contain every token, ModeAny at least one.
type Mode int

const (
	ModeAll Mode = iota
	ModeAny
)

// ParseMode maps the "any"/"tagsAny" query flags onto a Mode. Anything
// other than an explicit request for ANY keeps the ALL default.
func ParseMode(anyFlag string) Mode {
	if anyFlag == "true" || anyFlag == "1" {
		return ModeAny
	}
	return ModeAll
}

// Filter is a fully-formed, immutable recipe filter. The zero value
// matches every recipe. A dimension with no tokens is inert regardless
// of its mode flag.
type Filter struct {
	Ingredients     []string
	IngredientsMode Mode
	Tags            []string
	TagsMode        Mode
	CreatedBy       *uuid.UUID
}

// Apply adds one WHERE term per supplied dimension; the terms combine
// with implicit AND. ALL uses the Postgres array containment operator,
// ANY the overlap operator, so matching happens in the database against
// the stored lowercase arrays.
func (f Filter) Apply(db *gorm.DB) *gorm.DB {
	db = applyArray(db, "ingredients", f.Ingredients, f.IngredientsMode)
	db = applyArray(db, "tags", f.Tags, f.TagsMode)
	if f.CreatedBy != nil {
		db = db.Where("recipes.created_by = ?", *f.CreatedBy)
	}
	return db
}

func applyArray(db *gorm.DB, column string, tokens []string, mode Mode) *gorm.DB {
	if len(tokens) == 0 {
		return db
	}
	if mode == ModeAny {
		return db.Where("recipes."+column+" && ?", pq.Array(tokens))
	}
	return db.Where("recipes."+column+" @> ?", pq.Array(tokens))
}
