// internal/nodeid/parser.go
package nodeid

import (
	"fmt"
	"regexp"
	"strings"
)

// idRegex describes the characters a node id may contain.
var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_.:@/-]+$`)

// isValidSegmentName checks for undesirable but technically valid names.
func isValidSegmentName(name string) bool {
	if name == "." || name == ".." || name == "-" {
		return false
	}
	return true
}

// Validate reports whether rawID is an acceptable node id.
func Validate(rawID string) error {
	if rawID == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if !idRegex.MatchString(rawID) {
		return fmt.Errorf("invalid identifier format: %q", rawID)
	}

	for _, segment := range strings.Split(rawID, "/") {
		if segment == "" {
			return fmt.Errorf("identifier path contains empty segment: %q", rawID)
		}
		if !isValidSegmentName(segment) {
			return fmt.Errorf("invalid segment name: %q", segment)
		}
	}
	return nil
}
