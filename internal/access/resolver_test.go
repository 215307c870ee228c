package access

import (
	"testing"

	"github.com/IGORMASL/ReverseGanttDiagram-sub000/internal/model"
)

// stubStore backs the resolver with map fixtures.
type stubStore struct {
	roles   map[[2]uint]model.RoleKind // {userID, classID} -> role
	members map[[2]uint]bool           // {teamID, userID} -> member
}

func (s *stubStore) ClassRole(userID, classID uint) (model.RoleKind, bool, error) {
	role, ok := s.roles[[2]uint{userID, classID}]
	return role, ok, nil
}

func (s *stubStore) IsTeamMember(teamID, userID uint) (bool, error) {
	return s.members[[2]uint{teamID, userID}], nil
}

func TestResolve(t *testing.T) {
	store := &stubStore{
		roles: map[[2]uint]model.RoleKind{
			{1, 10}: model.RoleTeacher,
			{2, 10}: model.RoleStudent,
		},
		members: map[[2]uint]bool{
			{100, 3}: true,
		},
	}

	tests := []struct {
		name       string
		actor      Actor
		chain      Chain
		wantRead   bool
		wantManage bool
	}{
		{"admin manages everything", Actor{ID: 99, IsAdmin: true}, Chain{ClassID: 10, TeamID: 100}, true, true},
		{"teacher manages the class", Actor{ID: 1}, Chain{ClassID: 10}, true, true},
		{"teacher manages teams under the class", Actor{ID: 1}, Chain{ClassID: 10, TeamID: 100}, true, true},
		{"student reads only", Actor{ID: 2}, Chain{ClassID: 10}, true, false},
		{"team member reads without a class role", Actor{ID: 3}, Chain{ClassID: 10, TeamID: 100}, true, false},
		{"team member without the team in chain gets nothing", Actor{ID: 3}, Chain{ClassID: 10}, false, false},
		{"stranger gets nothing", Actor{ID: 4}, Chain{ClassID: 10, TeamID: 100}, false, false},
		{"role in another class does not carry over", Actor{ID: 1}, Chain{ClassID: 20}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Resolve(store, tt.actor, tt.chain)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if d.CanRead != tt.wantRead || d.CanManage != tt.wantManage {
				t.Errorf("got {read:%v manage:%v}, want {read:%v manage:%v}",
					d.CanRead, d.CanManage, tt.wantRead, tt.wantManage)
			}
		})
	}
}

func TestTeamMemberCanManage(t *testing.T) {
	store := &stubStore{
		roles: map[[2]uint]model.RoleKind{
			{1, 10}: model.RoleTeacher,
			{2, 10}: model.RoleStudent,
		},
		members: map[[2]uint]bool{
			{100, 2}: true,
			{100, 3}: true,
		},
	}

	tests := []struct {
		name       string
		actor      Actor
		chain      Chain
		wantRead   bool
		wantManage bool
	}{
		{"member of the team gains manage", Actor{ID: 3}, Chain{ClassID: 10, TeamID: 100}, true, true},
		{"student who is also a member gains manage", Actor{ID: 2}, Chain{ClassID: 10, TeamID: 100}, true, true},
		{"student outside the team stays read-only", Actor{ID: 2}, Chain{ClassID: 10, TeamID: 200}, true, false},
		{"teacher already manages", Actor{ID: 1}, Chain{ClassID: 10, TeamID: 100}, true, true},
		{"stranger still gets nothing", Actor{ID: 4}, Chain{ClassID: 10, TeamID: 100}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := TeamMemberCanManage(store, tt.actor, tt.chain)
			if err != nil {
				t.Fatalf("TeamMemberCanManage: %v", err)
			}
			if d.CanRead != tt.wantRead || d.CanManage != tt.wantManage {
				t.Errorf("got {read:%v manage:%v}, want {read:%v manage:%v}",
					d.CanRead, d.CanManage, tt.wantRead, tt.wantManage)
			}
		})
	}
}

func TestDecide(t *testing.T) {
	if d := Decide(true, "", false, false); !d.CanManage {
		t.Error("admin should manage")
	}
	if d := Decide(false, model.RoleTeacher, true, false); !d.CanManage {
		t.Error("teacher should manage")
	}
	if d := Decide(false, model.RoleStudent, true, false); !d.CanRead || d.CanManage {
		t.Error("student should read only")
	}
	if d := Decide(false, "", false, true); !d.CanRead || d.CanManage {
		t.Error("member should read only")
	}
	if d := Decide(false, "", false, false); d.CanRead {
		t.Error("stranger should get nothing")
	}
}
