package workspace

import (
	"context"
	"time"
)

// MembershipRole is the role of a workspace member.
type MembershipRole string

const (
	RoleOwner       MembershipRole = "owner"
	RoleContributor MembershipRole = "contributor"
)

// Membership associates a user with a workspace.
type Membership struct {
	Member            string         `json:"member"`
	Role              MembershipRole `json:"role"`
	CreationTimestamp *time.Time     `json:"creation_timestamp,omitempty"`
}

// MembershipService is the external membership bookkeeping collaborator.
type MembershipService interface {
	// ListMembers returns the members of a workspace.
	ListMembers(ctx context.Context, name string) ([]Membership, error)

	// ReplaceMembers sets the definitive member list for a workspace.
	ReplaceMembers(ctx context.Context, name string, members []string) error
}
