package pharmacy

import (
	"errors"
	"fmt"

	"epharmacy/internal/core/domain/model/kernel"
	"epharmacy/internal/pkg/errs"
	"epharmacy/internal/pkg/guard"
)

var ErrMembershipIsNotConstructed = errors.New("Membership must be created via NewMembership constructor")

// Role of a member inside a pharmacy.
type Role int

const (
	RoleUnknown Role = iota
	RoleOwner
	RolePharmacist
)

var roleNames = map[Role]string{
	RoleUnknown:    "Unknown",
	RoleOwner:      "Owner",
	RolePharmacist: "Pharmacist",
}

func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return "Unknown"
}

// Validate rejects RoleUnknown and out-of-range values.
func (r Role) Validate() error {
	if r != RoleOwner && r != RolePharmacist {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Membership authorizes a user to act on behalf of a pharmacy.
type Membership struct {
	id         kernel.UUID
	pharmacyID kernel.UUID
	userID     kernel.UUID
	role       Role
	active     bool
	guard      guard.ConstructorGuard
}

// NewMembership creates an active membership.
func NewMembership(id, pharmacyID, userID kernel.UUID, role Role) (*Membership, error) {
	return RestoreMembership(id, pharmacyID, userID, role, true)
}

// RestoreMembership rebuilds a membership loaded from persistence.
func RestoreMembership(id, pharmacyID, userID kernel.UUID, role Role, active bool) (*Membership, error) {
	if err := errors.Join(
		id.Validate(),
		pharmacyID.Validate(),
		userID.Validate(),
		role.Validate(),
	); err != nil {
		return nil, err
	}

	return &Membership{
		id:         id,
		pharmacyID: pharmacyID,
		userID:     userID,
		role:       role,
		active:     active,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (m *Membership) Validate() error {
	if m == nil {
		return ErrMembershipIsNotConstructed
	}
	return m.guard.Validate(ErrMembershipIsNotConstructed)
}

func (m *Membership) ID() kernel.UUID         { return m.id }
func (m *Membership) PharmacyID() kernel.UUID { return m.pharmacyID }
func (m *Membership) UserID() kernel.UUID     { return m.userID }
func (m *Membership) Role() Role              { return m.role }
func (m *Membership) IsActive() bool          { return m.active }

// Deactivate revokes the membership without deleting it.
func (m *Membership) Deactivate() {
	m.active = false
}
