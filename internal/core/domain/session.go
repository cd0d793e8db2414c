package domain

// SessionState is a point-in-time snapshot of the client session.
//
// Invariant: Authenticated implies User != nil and Token != "".
type SessionState struct {
	User          *User
	Token         string
	Loading       bool
	Authenticated bool
}
