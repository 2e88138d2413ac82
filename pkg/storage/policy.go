package storage

import (
	"errors"
	"fmt"
	"strings"
)

// OverwritePolicy decides what happens when a copy targets a name that
// already exists in the managed directory.
type OverwritePolicy string

const (
	// Overwrite replaces the existing file.
	Overwrite OverwritePolicy = "overwrite"
	// Reject leaves the existing file alone and fails the copy.
	Reject OverwritePolicy = "reject"
)

// ErrDestinationExists is returned for a copy refused under Reject.
var ErrDestinationExists = errors.New("destination already exists")

// Policies lists the accepted policy names.
func Policies() []string {
	return []string{string(Overwrite), string(Reject)}
}

// ParseOverwritePolicy accepts a policy name, case-insensitively. The empty
// string selects Overwrite.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch p := OverwritePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Overwrite, nil
	case Overwrite, Reject:
		return p, nil
	default:
		return "", fmt.Errorf("unknown overwrite policy %q (want one of %s)", s, strings.Join(Policies(), ", "))
	}
}

func (p OverwritePolicy) String() string {
	return string(p)
}

// UnmarshalText lets config decoders and flag parsers fill a policy directly.
func (p *OverwritePolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseOverwritePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// MarshalText writes the policy name.
func (p OverwritePolicy) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// Set implements pflag.Value.
func (p *OverwritePolicy) Set(s string) error {
	return p.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (p *OverwritePolicy) Type() string {
	return "policy"
}
