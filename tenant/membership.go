package tenant

import (
	"context"
	"encoding/json"
	"time"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/kv"
)

var membershipBucket = []byte("membershipsv1")

// MembershipStore is a kv backed workspace.MembershipService. The first
// member of a replaced list is the owner, the rest are contributors.
type MembershipStore struct {
	kvStore kv.Store

	now func() time.Time
}

var _ workspace.MembershipService = (*MembershipStore)(nil)

// NewMembershipStore constructs a membership store on top of a kv.Store.
func NewMembershipStore(kvStore kv.Store) *MembershipStore {
	return &MembershipStore{
		kvStore: kvStore,
		now:     time.Now,
	}
}

// ListMembers returns the members of a workspace. A workspace without a
// stored member list has no members, which is not an error.
func (s *MembershipStore) ListMembers(ctx context.Context, name string) ([]workspace.Membership, error) {
	var members []workspace.Membership
	err := s.kvStore.View(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(membershipBucket)
		if err == kv.ErrBucketNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		v, err := b.Get([]byte(name))
		if kv.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return ErrInternalServiceError(err)
		}

		if err := json.Unmarshal(v, &members); err != nil {
			return ErrCorruptRecord(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ReplaceMembers sets the definitive member list for a workspace.
// Creation timestamps of existing members are preserved.
func (s *MembershipStore) ReplaceMembers(ctx context.Context, name string, members []string) error {
	return s.kvStore.Update(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(membershipBucket)
		if err != nil {
			return err
		}

		existing := map[string]*time.Time{}
		if v, err := b.Get([]byte(name)); err == nil {
			var prev []workspace.Membership
			if err := json.Unmarshal(v, &prev); err != nil {
				return ErrCorruptRecord(err)
			}
			for _, m := range prev {
				existing[m.Member] = m.CreationTimestamp
			}
		} else if !kv.IsNotFound(err) {
			return ErrInternalServiceError(err)
		}

		now := s.now().UTC()
		next := make([]workspace.Membership, 0, len(members))
		for i, member := range members {
			role := workspace.RoleContributor
			if i == 0 {
				role = workspace.RoleOwner
			}

			created := existing[member]
			if created == nil {
				ts := now
				created = &ts
			}

			next = append(next, workspace.Membership{
				Member:            member,
				Role:              role,
				CreationTimestamp: created,
			})
		}

		v, err := json.Marshal(next)
		if err != nil {
			return ErrUnprocessableRecord(err)
		}
		if err := b.Put([]byte(name), v); err != nil {
			return ErrInternalServiceError(err)
		}
		return nil
	})
}
