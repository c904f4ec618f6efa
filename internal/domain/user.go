package domain

// User is an already-authenticated identity handed to us by the gateway.
// Credentials are never validated here.
type User struct {
	ID       string
	Email    string
	FullName string
}
