// Package tenant manages workspace lifecycle: the storage records backing
// each workspace and the assembled workspace views served to callers.
package tenant

import (
	"context"
	"encoding/json"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/EOEPCA/rm-workspace-api/kv"
	"go.uber.org/zap"
)

var recordBucket = []byte("storagerecordsv1")

// Store is a workspace.StorageRecordService over a kv.Store. Each record
// is one JSON document keyed by workspace name; merge-patches are applied
// read-modify-write inside a single update transaction, which is the per
// record consistency the engine relies on. There is deliberately no cross
// record transaction.
type Store struct {
	kvStore kv.Store
	logger  *zap.Logger
}

var _ workspace.StorageRecordService = (*Store)(nil)

// NewStore constructs a record store on top of a kv.Store.
func NewStore(kvStore kv.Store) *Store {
	return &Store{
		kvStore: kvStore,
		logger:  zap.NewNop(),
	}
}

// WithLogger sets the logger on the store.
func (s *Store) WithLogger(l *zap.Logger) {
	s.logger = l
}

func unmarshalRecord(v []byte) (*workspace.StorageRecord, error) {
	r := &workspace.StorageRecord{}
	if err := json.Unmarshal(v, r); err != nil {
		return nil, ErrCorruptRecord(err)
	}
	return r, nil
}

func marshalRecord(r *workspace.StorageRecord) ([]byte, error) {
	v, err := json.Marshal(r)
	if err != nil {
		return nil, ErrUnprocessableRecord(err)
	}
	return v, nil
}

// ListRecords returns a snapshot of every storage record. Documents that
// no longer decode are logged and skipped so that one bad entry cannot
// hide every other record from derivations; lookups that target the
// corrupt record itself still fail loudly through FindRecord.
func (s *Store) ListRecords(ctx context.Context) ([]workspace.StorageRecord, error) {
	var records []workspace.StorageRecord
	err := s.kvStore.View(ctx, func(tx kv.Tx) error {
		b, err := tx.Bucket(recordBucket)
		if err == kv.ErrBucketNotFound {
			// Nothing written yet.
			return nil
		}
		if err != nil {
			return err
		}

		cursor, err := b.Cursor()
		if err != nil {
			return err
		}

		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			r, err := unmarshalRecord(v)
			if err != nil {
				s.logger.Warn("skipping corrupt storage record",
					zap.ByteString("key", k),
					zap.Error(err))
				continue
			}
			records = append(records, *r)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// FindRecord returns the record for one workspace.
func (s *Store) FindRecord(ctx context.Context, name string) (*workspace.StorageRecord, error) {
	var record *workspace.StorageRecord
	err := s.kvStore.View(ctx, func(tx kv.Tx) error {
		r, err := s.getRecord(tx, name)
		if err != nil {
			return err
		}
		record = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) getRecord(tx kv.Tx, name string) (*workspace.StorageRecord, error) {
	b, err := tx.Bucket(recordBucket)
	if err == kv.ErrBucketNotFound {
		return nil, ErrRecordNotFound(name)
	}
	if err != nil {
		return nil, err
	}

	v, err := b.Get([]byte(name))
	if kv.IsNotFound(err) {
		return nil, ErrRecordNotFound(name)
	}
	if err != nil {
		return nil, ErrInternalServiceError(err)
	}

	return unmarshalRecord(v)
}

func (s *Store) putRecord(tx kv.Tx, r *workspace.StorageRecord) error {
	b, err := tx.Bucket(recordBucket)
	if err != nil {
		return err
	}

	v, err := marshalRecord(r)
	if err != nil {
		return err
	}

	if err := b.Put([]byte(r.Name), v); err != nil {
		return ErrInternalServiceError(err)
	}
	return nil
}

// CreateRecord stores a new record, failing if one already exists for the
// workspace.
func (s *Store) CreateRecord(ctx context.Context, r *workspace.StorageRecord) error {
	return s.kvStore.Update(ctx, func(tx kv.Tx) error {
		if _, err := s.getRecord(tx, r.Name); err == nil {
			return RecordAlreadyExistsError(r.Name)
		} else if workspace.ErrorCode(err) != workspace.ENotFound {
			return err
		}

		return s.putRecord(tx, r)
	})
}

// PatchRecord applies a merge-patch to one workspace's record: non-nil
// patch fields replace, list fields wholesale.
func (s *Store) PatchRecord(ctx context.Context, name string, patch workspace.RecordPatch) error {
	return s.kvStore.Update(ctx, func(tx kv.Tx) error {
		r, err := s.getRecord(tx, name)
		if err != nil {
			return err
		}

		if patch.Principal != nil {
			r.Spec.Principal = *patch.Principal
		}
		if patch.Buckets != nil {
			r.Spec.Buckets = *patch.Buckets
		}
		if patch.AccessRequests != nil {
			r.Spec.AccessRequests = *patch.AccessRequests
		}
		if patch.AccessGrants != nil {
			r.Spec.AccessGrants = *patch.AccessGrants
		}

		return s.putRecord(tx, r)
	})
}

// DeleteRecord removes a record.
func (s *Store) DeleteRecord(ctx context.Context, name string) error {
	return s.kvStore.Update(ctx, func(tx kv.Tx) error {
		if _, err := s.getRecord(tx, name); err != nil {
			return err
		}

		b, err := tx.Bucket(recordBucket)
		if err != nil {
			return err
		}
		if err := b.Delete([]byte(name)); err != nil {
			return ErrInternalServiceError(err)
		}
		return nil
	})
}
