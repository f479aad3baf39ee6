package errors

import (
	"strings"
	"unicode"
)

// ValidatePackageName validates a package name given on the command line.
//
// Index package names never contain whitespace (the dependency field is split
// on it) or a colon (the test-mode graph format uses it as separator), so
// such names could never match a record and are rejected up front.
func ValidatePackageName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPackage, "package name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidPackage, "package name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPackage, "package name contains invalid control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidPackage, "package name cannot contain whitespace")
		}
	}

	if strings.Contains(name, ":") {
		return New(ErrCodeInvalidPackage, "package name contains invalid characters: %q", ":")
	}

	return nil
}

// ValidateVersion validates an optional package version.
// An empty version is valid and means "first record with this name".
func ValidateVersion(version string) error {
	if version == "" {
		return nil
	}
	if len(version) > 128 {
		return New(ErrCodeInvalidVersion, "version too long (max 128 characters)")
	}
	for _, r := range version {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidVersion, "version %q contains whitespace or control characters", version)
		}
	}
	return nil
}

// ValidateURL validates a remote index URL.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
