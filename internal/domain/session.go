package domain

// SessionState is the console's view of who is signed in.
//
// Authenticated implies Identity != nil. Loading is true only while the
// stored credential is being restored or a login call is in flight.
type SessionState struct {
	Identity      *Identity
	Authenticated bool
	Loading       bool
}

// Clone returns a snapshot that callers may keep without aliasing the
// session manager's state.
func (s SessionState) Clone() SessionState {
	s.Identity = s.Identity.Clone()
	return s
}

// Unauthenticated is the signed-out state.
func Unauthenticated() SessionState {
	return SessionState{}
}
