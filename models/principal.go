package models

// Principal is the opaque, already-authenticated caller identity supplied
// by the transport layer. The zero value is the anonymous identity.
type Principal string

// Anonymous is the unset caller identity.
const Anonymous Principal = ""

// IsAnonymous reports whether the principal is the anonymous identity
func (p Principal) IsAnonymous() bool {
	return p == Anonymous
}

func (p Principal) String() string {
	return string(p)
}
