package domain

// Role is the opaque role tag supplied by the identity collaborator.
type Role string

const (
	RoleFrontDesk  Role = "frontdesk"
	RoleManager    Role = "manager"
	RoleTechnician Role = "technician"
	RoleAdmin      Role = "admin"
	RoleOwner      Role = "owner"
)

// Actor is the authenticated caller as handed over by the identity
// collaborator: an opaque user id, a role tag and, for front-desk staff,
// the branch they are currently working at.
type Actor struct {
	UserID           int64
	Role             Role
	ActiveBranchCode string
}

// RolePolicy is the fixed permission set of one role. Branch scoping and
// action checks go through this table rather than per-call-site branching.
type RolePolicy struct {
	// OwnBranchOnly pins every operation to the actor's active branch.
	OwnBranchOnly bool
	// CanRecord allows creating and editing pending transactions.
	CanRecord bool
	// CanClose allows sealing a branch's pending set into a settlement.
	CanClose bool
	// CanSeeDeleted includes soft-deleted rows in listings and lookups.
	CanSeeDeleted bool
	// CanHardDelete allows permanent erasure of never-closed rows.
	CanHardDelete bool
	// CanReverse allows undoing settlements and repairing their membership.
	CanReverse bool
	// CanViewRankings exposes the cross-branch dashboard figures.
	CanViewRankings bool
}

var rolePolicies = map[Role]RolePolicy{
	RoleFrontDesk:  {OwnBranchOnly: true, CanRecord: true, CanClose: true},
	RoleManager:    {CanRecord: true, CanClose: true},
	RoleTechnician: {},
	RoleAdmin:      {CanRecord: true, CanClose: true, CanSeeDeleted: true, CanHardDelete: true, CanReverse: true, CanViewRankings: true},
	RoleOwner:      {CanRecord: true, CanClose: true, CanSeeDeleted: true, CanHardDelete: true, CanReverse: true, CanViewRankings: true},
}

// PolicyFor returns the permission set for a role. Unknown roles get the
// empty policy, which permits read-only access to non-deleted rows.
func PolicyFor(role Role) RolePolicy {
	return rolePolicies[role]
}

// BranchScope resolves which branch an operation may target. For own-branch
// roles the requested code must be empty or equal to the active branch;
// other roles pass the request through.
func (a Actor) BranchScope(requested string) (string, bool) {
	policy := PolicyFor(a.Role)
	if !policy.OwnBranchOnly {
		return requested, true
	}
	if requested == "" || requested == a.ActiveBranchCode {
		return a.ActiveBranchCode, true
	}
	return "", false
}
