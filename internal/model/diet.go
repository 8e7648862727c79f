package model

// DietaryRestriction is one diet tag owned by a user, e.g. "vegan" or
// "gluten-free". The tag doubles as a filter parameter on outbound recipe
// searches.
//
// The full set of rows for a user is replaced wholesale on every update
// (delete-all-then-insert inside one transaction), so individual rows are
// never edited in place. Row order carries no meaning.
type DietaryRestriction struct {
	ID     int64  `json:"id"     db:"id"`
	UserID string `json:"-"      db:"user_id"`
	Diet   string `json:"diet"   db:"diet"`
}
