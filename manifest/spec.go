package manifest

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/0xsouravm/solpm/errors"
)

// PackageSpec is a parsed dependency reference: a program name and an
// optional pinned version. An empty Version means latest.
type PackageSpec struct {
	Name    string
	Version string
}

// ParsePackageSpec splits "name" or "name@version" on the first '@'.
// When a version is present it must parse as semver; names must be
// non-empty.
func ParsePackageSpec(spec string) (PackageSpec, error) {
	name, version, found := strings.Cut(spec, "@")
	if name == "" {
		return PackageSpec{}, errors.Newf("invalid package spec %q: empty program name", spec)
	}
	if !found {
		return PackageSpec{Name: name}, nil
	}
	if _, err := semver.NewVersion(version); err != nil {
		return PackageSpec{}, errors.Wrapf(err, "invalid version in package spec %q", spec)
	}
	return PackageSpec{Name: name, Version: version}, nil
}

// String renders the spec back to its name[@version] form.
func (s PackageSpec) String() string {
	if s.Version == "" {
		return s.Name
	}
	return s.Name + "@" + s.Version
}
