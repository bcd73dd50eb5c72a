package workspace_test

import (
	"testing"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/stretchr/testify/assert"
)

func TestParseBucketPermission(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want workspace.BucketPermission
		ok   bool
	}{
		{
			name: "canonical none",
			in:   "None",
			want: workspace.PermissionNone,
			ok:   true,
		},
		{
			name: "canonical read write",
			in:   "ReadWrite",
			want: workspace.PermissionReadWrite,
			ok:   true,
		},
		{
			name: "dashed lower case",
			in:   "read-only",
			want: workspace.PermissionReadOnly,
			ok:   true,
		},
		{
			name: "surrounding whitespace",
			in:   "  WriteOnly ",
			want: workspace.PermissionWriteOnly,
			ok:   true,
		},
		{
			name: "empty is unrecognized",
			in:   "",
			want: workspace.PermissionNone,
			ok:   false,
		},
		{
			name: "garbage degrades to none",
			in:   "FullControl",
			want: workspace.PermissionNone,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := workspace.ParseBucketPermission(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestInferBucketPermission(t *testing.T) {
	tests := []struct {
		name   string
		reason string
		want   workspace.BucketPermission
	}{
		{
			name:   "plain reason defaults to read write",
			reason: "need the data for processing",
			want:   workspace.PermissionReadWrite,
		},
		{
			name:   "read only keyword",
			reason: "ReadOnly access please",
			want:   workspace.PermissionReadOnly,
		},
		{
			name:   "dashed write only keyword",
			reason: "write-only drop zone",
			want:   workspace.PermissionWriteOnly,
		},
		{
			name:   "read only wins over write only",
			reason: "readonly not writeonly",
			want:   workspace.PermissionReadOnly,
		},
		{
			name:   "empty reason",
			reason: "",
			want:   workspace.PermissionReadWrite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, workspace.InferBucketPermission(tt.reason))
		})
	}
}

func TestBucketPermissionGranted(t *testing.T) {
	assert.True(t, workspace.PermissionReadOnly.Granted())
	assert.True(t, workspace.PermissionWriteOnly.Granted())
	assert.True(t, workspace.PermissionReadWrite.Granted())
	assert.False(t, workspace.PermissionNone.Granted())
	assert.False(t, workspace.BucketPermission("Admin").Granted())
}
