package services

import "eventrsvp/internal/domain"

type admissionGate struct {
	verifier domain.TokenVerifier
}

// NewAdmissionGate returns a gate that delegates credential checks to verifier.
func NewAdmissionGate(verifier domain.TokenVerifier) domain.AdmissionGate {
	return &admissionGate{verifier: verifier}
}

// Authorize never fails for Public; a verifiable credential still yields its principal.
func (g *admissionGate) Authorize(credential string, requirement domain.Requirement) (*domain.Principal, error) {
	if requirement == domain.Public {
		if credential == "" {
			return nil, nil
		}
		p, err := g.verifier.Verify(credential)
		if err != nil {
			return nil, nil
		}
		return p, nil
	}

	if credential == "" {
		return nil, domain.ErrMissingCredential
	}
	p, err := g.verifier.Verify(credential)
	if err != nil {
		return nil, domain.ErrInvalidCredential
	}
	if !p.HasRole(domain.RoleAdmin) {
		return nil, domain.ErrInsufficientRole
	}
	return p, nil
}
