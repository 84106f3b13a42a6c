package repository

// CartOwner identifies who a cart row belongs to: an authenticated user
// or an anonymous session, never both.
type CartOwner struct {
	UserID    uint
	SessionID string
}

// UserOwner builds an owner for an authenticated user.
func UserOwner(userID uint) CartOwner {
	return CartOwner{UserID: userID}
}

// SessionOwner builds an owner for an anonymous session.
func SessionOwner(sessionID string) CartOwner {
	return CartOwner{SessionID: sessionID}
}

// IsZero reports whether no owner identity is present.
func (o CartOwner) IsZero() bool {
	return o.UserID == 0 && o.SessionID == ""
}

// ProductFilter drives the combined catalog filter query.
type ProductFilter struct {
	Category string // raw slug from the query string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
	Sort     string
}
