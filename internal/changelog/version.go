package changelog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrMalformedVersion is returned when a version string does not parse
// under semantic-version rules.
var ErrMalformedVersion = errors.New("malformed version")

// NormalizeVersion trims whitespace and drops a leading "v" or "V".
// Both "v0.6.0" and "0.6.0" are accepted as input. The rest of the string,
// prerelease identifiers included, keeps its case.
func NormalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") || strings.HasPrefix(version, "V") {
		return version[1:]
	}
	return version
}

// VersionLabel is the display form of a version: "v" followed by the
// normalized version, so "3.0" and "v3.0" both read "v3.0".
func VersionLabel(version string) string {
	return "v" + NormalizeVersion(version)
}

// CanonicalVersion returns the canonical MAJOR.MINOR.PATCH form of a version,
// without the "v" prefix. The shorthands "2" and "2.1" expand to "2.0.0" and
// "2.1.0". Build metadata is dropped because it does not affect ordering.
func CanonicalVersion(version string) (string, error) {
	normalized := NormalizeVersion(version)
	if normalized == "" {
		return "", fmt.Errorf("%w: empty version", ErrMalformedVersion)
	}
	canonical := semver.Canonical("v" + normalized)
	if canonical == "" {
		return "", fmt.Errorf("%w: %q", ErrMalformedVersion, version)
	}
	return strings.TrimPrefix(canonical, "v"), nil
}

// IsValidVersion reports whether version parses as a semantic version.
func IsValidVersion(version string) bool {
	_, err := CanonicalVersion(version)
	return err == nil
}

// CompareVersions compares a and b segment by segment, numerically.
// The result is -1 if a < b, 0 if a == b and +1 if a > b.
// "1.10.0" orders after "1.9.0".
func CompareVersions(a, b string) (int, error) {
	ca, err := CanonicalVersion(a)
	if err != nil {
		return 0, err
	}
	cb, err := CanonicalVersion(b)
	if err != nil {
		return 0, err
	}
	return semver.Compare("v"+ca, "v"+cb), nil
}

// VersionNewer reports whether candidate is strictly newer than baseline.
// Malformed versions are never newer.
func VersionNewer(candidate, baseline string) bool {
	cmp, err := CompareVersions(candidate, baseline)
	return err == nil && cmp > 0
}
