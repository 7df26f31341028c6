package errors

import (
	"strings"
	"unicode"
)

// manifestMeta lists characters that carry meaning in the dependency
// manifest format and therefore cannot appear in unique names.
const manifestMeta = ",[]#"

// ValidateModuleName validates a library unique name.
//
// The validation rules:
//   - No empty names
//   - Maximum length of 512 characters
//   - No control characters or whitespace
//   - No manifest metacharacters (',', '[', ']', '#')
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidModuleName, "module name cannot be empty")
	}

	const maxNameLength = 512
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidModuleName, "module name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidModuleName, "module name contains whitespace or control characters: %q", name)
		}
	}

	if i := strings.IndexAny(name, manifestMeta); i >= 0 {
		return New(ErrCodeInvalidModuleName, "module name contains reserved character %q: %q", name[i], name)
	}

	return nil
}

// ValidateArtifactPath validates a library artifact location.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No control characters (tabs and newlines delimit manifest entries)
func ValidateArtifactPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "artifact path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "artifact path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "artifact path contains control characters")
		}
	}

	return nil
}

// ValidateVersion validates a version string. Empty means unknown and is
// accepted.
func ValidateVersion(version string) error {
	for _, r := range version {
		if unicode.IsControl(r) || unicode.IsSpace(r) || r == '[' || r == ']' {
			return New(ErrCodeInvalidInput, "version contains invalid characters: %q", version)
		}
	}
	return nil
}
