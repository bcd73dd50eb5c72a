package access

import (
	"strings"

	"github.com/google/uuid"
)

const maxSlugLength = 32

// NameResolver maps between external workspace names and internal
// principals. Principals are stable across workspace renames; the mapping
// is a configurable prefix, nothing more.
type NameResolver struct {
	// Prefix is prepended (with a dash) to principals to form workspace
	// names, e.g. prefix "ws" and principal "alice" yield "ws-alice".
	Prefix string
}

// WorkspaceName returns the external workspace name for a principal.
func (r NameResolver) WorkspaceName(principal string) string {
	if r.Prefix == "" {
		return principal
	}
	return r.Prefix + "-" + principal
}

// Principal returns the internal principal for a workspace name.
func (r NameResolver) Principal(name string) string {
	if r.Prefix == "" {
		return name
	}
	return strings.TrimPrefix(name, r.Prefix+"-")
}

// ValidName reports whether name carries the configured prefix.
func (r NameResolver) ValidName(name string) bool {
	if r.Prefix == "" {
		return name != ""
	}
	return strings.HasPrefix(name, r.Prefix+"-") && len(name) > len(r.Prefix)+1
}

// NameFromPreferred generates a workspace name from a user-provided
// preferred name: slugified, length-capped, prefixed. An empty slug falls
// back to a random identifier.
func (r NameResolver) NameFromPreferred(preferred string) string {
	slug := slugify(preferred)
	if slug == "" {
		slug = uuid.NewString()
	}
	return r.WorkspaceName(slug)
}

func slugify(s string) string {
	var b strings.Builder
	lastDash := true // strips leading dashes
	for _, c := range strings.ToLower(s) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
		if b.Len() >= maxSlugLength {
			break
		}
	}
	return strings.TrimRight(b.String(), "-")
}
