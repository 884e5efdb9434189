package repos

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListQuery carries paging and ordering for list lookups. Listings are
// finite; callers page by re-issuing with an updated Skip.
type ListQuery struct {
	Skip    int
	Take    int
	OrderBy string
	Desc    bool
}

func (q ListQuery) apply(db *gorm.DB) *gorm.DB {
	orderBy := q.OrderBy
	if orderBy == "" {
		orderBy = "id"
	}
	db = db.Order(clause.OrderByColumn{
		Column: clause.Column{Name: orderBy},
		Desc:   q.Desc,
	})
	if q.Skip > 0 {
		db = db.Offset(q.Skip)
	}
	if q.Take > 0 {
		db = db.Limit(q.Take)
	}
	return db
}
