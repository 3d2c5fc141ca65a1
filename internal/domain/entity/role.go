// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
// Roles form a ladder: user < ambassador < coordinator < admin. Escalation
// happens only through an approved role request.
type Role string

const (
	// RoleUser indicates a regular user role.
	RoleUser Role = "user"
	// RoleAmbassador indicates a referral-program ambassador.
	RoleAmbassador Role = "ambassador"
	// RoleCoordinator indicates a group coordinator.
	RoleCoordinator Role = "coordinator"
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
)

// roleRank maps each role to its position on the escalation ladder.
var roleRank = map[Role]int{
	RoleUser:        0,
	RoleAmbassador:  1,
	RoleCoordinator: 2,
	RoleAdmin:       3,
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	_, ok := roleRank[r]

	return ok
}

// AtLeast reports whether r sits at or above other on the escalation ladder.
func (r Role) AtLeast(other Role) bool {
	return roleRank[r] >= roleRank[other]
}

// EligibleForRoleDiscount reports whether the role qualifies for the flat
// role discount applied during order pricing.
func (r Role) EligibleForRoleDiscount() bool {
	return r.AtLeast(RoleAmbassador)
}
