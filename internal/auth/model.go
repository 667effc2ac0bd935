package auth

// User represents a row in the users table. Every user is a manager.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

// Identity is stored in the request context after the session is resolved.
type Identity struct {
	UserID   int64
	Username string
}
