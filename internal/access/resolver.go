package access

import (
	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

// Actor is the authenticated caller, already loaded by the auth
// middleware.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// Chain is the ancestor chain of the target entity: the class at the
// root and, when the target sits under a team, that team. Only ids are
// needed, never full objects.
type Chain struct {
	ClassID uint
	TeamID  uint
}

type Decision struct {
	CanRead   bool
	CanManage bool
}

// Store resolves the two relations a decision depends on. Implemented
// over the entity store in production and over map fixtures in tests.
type Store interface {
	ClassRole(userID, classID uint) (model.RoleKind, bool, error)
	IsTeamMember(teamID, userID uint) (bool, error)
}

// Decide is the pure decision over already-resolved relations.
// Admins manage everything; a teacher of the class manages everything
// under it; a student of the class or a member of the owning team may
// read; anyone else gets nothing.
func Decide(isAdmin bool, role model.RoleKind, hasRole, isMember bool) Decision {
	if isAdmin {
		return Decision{CanRead: true, CanManage: true}
	}
	if hasRole && role == model.RoleTeacher {
		return Decision{CanRead: true, CanManage: true}
	}
	if (hasRole && role == model.RoleStudent) || isMember {
		return Decision{CanRead: true}
	}
	return Decision{}
}

// Resolve evaluates the actor against the target chain. Team membership
// is only consulted when the chain carries a team and the class role
// alone did not settle the decision.
func Resolve(store Store, actor Actor, chain Chain) (Decision, error) {
	if actor.IsAdmin {
		return Decision{CanRead: true, CanManage: true}, nil
	}

	role, hasRole, err := store.ClassRole(actor.ID, chain.ClassID)
	if err != nil {
		return Decision{}, err
	}
	if hasRole && role == model.RoleTeacher {
		return Decision{CanRead: true, CanManage: true}, nil
	}

	isMember := false
	if chain.TeamID != 0 {
		isMember, err = store.IsTeamMember(chain.TeamID, actor.ID)
		if err != nil {
			return Decision{}, err
		}
	}
	return Decide(false, role, hasRole, isMember), nil
}

// TeamMemberCanManage extends a read-only team decision with manage
// rights for mutations scoped to the member's own team, which is how
// task editing works: members manage tasks inside their solution even
// though they cannot manage the team itself.
func TeamMemberCanManage(store Store, actor Actor, chain Chain) (Decision, error) {
	d, err := Resolve(store, actor, chain)
	if err != nil {
		return Decision{}, err
	}
	if d.CanManage || !d.CanRead || chain.TeamID == 0 {
		return d, nil
	}
	isMember, err := store.IsTeamMember(chain.TeamID, actor.ID)
	if err != nil {
		return Decision{}, err
	}
	if isMember {
		d.CanManage = true
	}
	return d, nil
}
