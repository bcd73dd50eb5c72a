package workspace_test

import (
	"strings"
	"testing"

	workspace "github.com/EOEPCA/rm-workspace-api"
	"github.com/stretchr/testify/assert"
)

func TestIsValidBucketName(t *testing.T) {
	valid := []string{
		"abc",
		"ws-alice",
		"my.bucket.01",
		strings.Repeat("a", 63),
	}
	for _, name := range valid {
		assert.True(t, workspace.IsValidBucketName(name), name)
	}

	invalid := []string{
		"",
		"ab",
		strings.Repeat("a", 64),
		"Uppercase",
		"under_score",
		"-leading-dash",
		"trailing-dash-",
		".leading-dot",
		"trailing-dot.",
		"double..dot",
		"dot.-dash",
		"dash-.dot",
		"with space",
	}
	for _, name := range invalid {
		assert.False(t, workspace.IsValidBucketName(name), name)
	}
}

func TestStorageRecordDiscoverableBuckets(t *testing.T) {
	r := workspace.StorageRecord{
		Spec: workspace.RecordSpec{
			Buckets: []workspace.Bucket{
				{Name: "ws-alice"},
				{Name: "shared-data", Discoverable: true},
				{Name: "scratch"},
				{Name: "published", Discoverable: true},
			},
		},
	}

	assert.Equal(t, []string{"shared-data", "published"}, r.DiscoverableBuckets())
	assert.Nil(t, (&workspace.StorageRecord{}).DiscoverableBuckets())
}
