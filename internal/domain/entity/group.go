package entity

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Group is one coordinator plus a set of ambassadors, ranked monthly by
// aggregate order value. Membership is mirrored onto User.GroupID on every
// mutation; that mirror is a design contract, not a database guarantee.
type Group struct {
	ID            uuid.UUID   `json:"id"`
	AdminID       uuid.UUID   `json:"admin_id"`
	CoordinatorID uuid.UUID   `json:"coordinator_id"`
	AmbassadorIDs []uuid.UUID `json:"ambassador_ids"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Members returns the coordinator followed by every ambassador.
func (g *Group) Members() []uuid.UUID {
	members := make([]uuid.UUID, 0, len(g.AmbassadorIDs)+1)
	members = append(members, g.CoordinatorID)
	members = append(members, g.AmbassadorIDs...)

	return members
}

// HasAmbassador reports whether the user is an ambassador of this group.
func (g *Group) HasAmbassador(userID uuid.UUID) bool {
	return slices.Contains(g.AmbassadorIDs, userID)
}

// RemoveAmbassador drops the user from the ambassador set.
func (g *Group) RemoveAmbassador(userID uuid.UUID) {
	g.AmbassadorIDs = slices.DeleteFunc(g.AmbassadorIDs, func(id uuid.UUID) bool {
		return id == userID
	})
}

// AddAmbassador appends the user to the ambassador set, keeping set semantics.
func (g *Group) AddAmbassador(userID uuid.UUID) {
	if !g.HasAmbassador(userID) {
		g.AmbassadorIDs = append(g.AmbassadorIDs, userID)
	}
}

// GroupSales is one group's aggregated order value for a month.
type GroupSales struct {
	GroupID       uuid.UUID   `json:"group_id"`
	CoordinatorID uuid.UUID   `json:"coordinator_id"`
	AmbassadorIDs []uuid.UUID `json:"ambassador_ids"`
	TotalSales    float64     `json:"total_sales"`
}
