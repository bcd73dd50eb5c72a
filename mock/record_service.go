package mock

import (
	"context"
	"fmt"

	workspace "github.com/EOEPCA/rm-workspace-api"
)

var _ workspace.StorageRecordService = (*StorageRecordService)(nil)

// StorageRecordService is a mock implementation of a
// workspace.StorageRecordService.
type StorageRecordService struct {
	ListRecordsFn  func(ctx context.Context) ([]workspace.StorageRecord, error)
	FindRecordFn   func(ctx context.Context, name string) (*workspace.StorageRecord, error)
	CreateRecordFn func(ctx context.Context, r *workspace.StorageRecord) error
	PatchRecordFn  func(ctx context.Context, name string, patch workspace.RecordPatch) error
	DeleteRecordFn func(ctx context.Context, name string) error
}

// NewStorageRecordService returns a mock StorageRecordService where its
// methods will return zero values.
func NewStorageRecordService() *StorageRecordService {
	return &StorageRecordService{
		ListRecordsFn: func(ctx context.Context) ([]workspace.StorageRecord, error) {
			return nil, nil
		},
		FindRecordFn: func(ctx context.Context, name string) (*workspace.StorageRecord, error) {
			return nil, fmt.Errorf("not implemented")
		},
		CreateRecordFn: func(ctx context.Context, r *workspace.StorageRecord) error {
			return nil
		},
		PatchRecordFn: func(ctx context.Context, name string, patch workspace.RecordPatch) error {
			return nil
		},
		DeleteRecordFn: func(ctx context.Context, name string) error {
			return nil
		},
	}
}

func (s *StorageRecordService) ListRecords(ctx context.Context) ([]workspace.StorageRecord, error) {
	return s.ListRecordsFn(ctx)
}

func (s *StorageRecordService) FindRecord(ctx context.Context, name string) (*workspace.StorageRecord, error) {
	return s.FindRecordFn(ctx, name)
}

func (s *StorageRecordService) CreateRecord(ctx context.Context, r *workspace.StorageRecord) error {
	return s.CreateRecordFn(ctx, r)
}

func (s *StorageRecordService) PatchRecord(ctx context.Context, name string, patch workspace.RecordPatch) error {
	return s.PatchRecordFn(ctx, name, patch)
}

func (s *StorageRecordService) DeleteRecord(ctx context.Context, name string) error {
	return s.DeleteRecordFn(ctx, name)
}
