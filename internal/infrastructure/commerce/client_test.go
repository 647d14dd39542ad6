package commerce

import (
	"testing"

	"statuspulse-integration-layer/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRewriteStatusTags(t *testing.T) {
	tests := []struct {
		name     string
		tags     string
		tag      domain.Tag
		expected string
	}{
		{"no existing tags", "", domain.TagWorking, "status:working"},
		{"replaces status tag", "status:down, featured", domain.TagWorking, "featured, status:working"},
		{"keeps other tags", "sale, new, status:working", domain.TagDown, "sale, new, status:down"},
		{"multiple status tags collapse", "status:down, status:updating, sale", domain.TagWorking, "sale, status:working"},
		{"whitespace handling", "  sale ,  status:down  ", domain.TagUpdating, "sale, status:updating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RewriteStatusTags(tt.tags, tt.tag))
		})
	}
}
