package domain

// Activatable is implemented by every soft-deletable entity.
type Activatable interface {
	Visible() bool
}

// Visible reports whether an entity should appear in standard views.
// Reporting applies this predicate instead of re-deriving active-flag
// filters per query.
func Visible(a Activatable) bool {
	return a.Visible()
}
