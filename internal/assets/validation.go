package assets

import (
	"fmt"
	"regexp"
)

// assetNamePattern admits theme and skeleton names such as "dark" or
// "ticket_v2". Anything else could escape the asset directory or pick a
// different extension.
var assetNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// ValidateAssetName returns ErrInvalidAssetName unless name is a bare asset
// name.
func ValidateAssetName(name string) error {
	if !assetNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
