package inspect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Path addresses an attribute: "attr" on the device or "group.attr".
type Path struct {
	Group     string
	Attribute string
}

// ParsePath parses an attribute path.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Path{}, ErrEmptyPath
	}

	var p Path
	if group, attr, ok := strings.Cut(s, "."); ok {
		p.Group, p.Attribute = group, attr
		if !identifier.MatchString(group) {
			return Path{}, fmt.Errorf("%w: %q: bad group name", ErrInvalidPath, s)
		}
	} else {
		p.Attribute = s
	}
	if !identifier.MatchString(p.Attribute) {
		return Path{}, fmt.Errorf("%w: %q: bad attribute name", ErrInvalidPath, s)
	}
	return p, nil
}

// String returns the dotted form accepted by device.Device.Get.
func (p Path) String() string {
	if p.Group == "" {
		return p.Attribute
	}
	return p.Group + "." + p.Attribute
}
