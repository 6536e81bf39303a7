package domain

// Requirement is the access level an operation demands.
type Requirement int

const (
	Public Requirement = iota
	AdminOnly
)

// AdmissionGate authorizes callers for guarded operations. It returns the
// verified principal (nil for anonymous Public access) or one of
// ErrMissingCredential, ErrInvalidCredential, ErrInsufficientRole.
type AdmissionGate interface {
	Authorize(credential string, requirement Requirement) (*Principal, error)
}
