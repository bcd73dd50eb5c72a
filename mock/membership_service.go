package mock

import (
	"context"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var _ workspace.MembershipService = (*MembershipService)(nil)

// MembershipService is a mock implementation of a
// workspace.MembershipService.
type MembershipService struct {
	ListMembersFn    func(ctx context.Context, name string) ([]workspace.Membership, error)
	ReplaceMembersFn func(ctx context.Context, name string, members []string) error
}

// NewMembershipService returns a mock MembershipService where its methods
// will return zero values.
func NewMembershipService() *MembershipService {
	return &MembershipService{
		ListMembersFn: func(ctx context.Context, name string) ([]workspace.Membership, error) {
			return nil, nil
		},
		ReplaceMembersFn: func(ctx context.Context, name string, members []string) error {
			return nil
		},
	}
}

func (s *MembershipService) ListMembers(ctx context.Context, name string) ([]workspace.Membership, error) {
	return s.ListMembersFn(ctx, name)
}

func (s *MembershipService) ReplaceMembers(ctx context.Context, name string, members []string) error {
	return s.ReplaceMembersFn(ctx, name, members)
}
