package domain

// Customer is a local replica of the identity service's record, kept in sync
// through CustomerRegistered events so foreign keys hold.
type Customer struct {
	ID    int64  `db:"id" json:"id"`
	Email string `db:"email" json:"email"`
}

// Identity is the authenticated caller as established by the auth middleware.
type Identity struct {
	CustomerID int64
	Email      string
	Role       string
}
