package loader

import (
	"fmt"
	"strings"

	"github.com/nharlow/qrpg/world"
)

// ValidationError collects all validation errors found in the world data.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// validate checks the compiled blueprint for referential integrity.
func validate(bp *world.Blueprint) error {
	ve := &ValidationError{}

	if bp.Title == "" {
		ve.Errors = append(ve.Errors, "World.title is required")
	}

	labels := map[string]bool{}
	for _, loc := range bp.Locations {
		if loc.Label == "" {
			ve.Errors = append(ve.Errors, "location with empty label")
			continue
		}
		if labels[loc.Label] {
			ve.Errors = append(ve.Errors, fmt.Sprintf("duplicate location label %q", loc.Label))
		}
		labels[loc.Label] = true
	}

	if bp.Start == "" {
		ve.Errors = append(ve.Errors, "World.start is required")
	} else if !labels[bp.Start] {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"start location %q not found in defined locations", bp.Start))
	}

	for _, loc := range bp.Locations {
		for dir, target := range loc.Exits {
			if !labels[target] {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q exit %s points to undefined location %q",
					loc.Label, dir, target))
			}
		}
		for i, e := range loc.Encounters {
			if e.Probability < 0 || e.Probability > 1 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"location %q encounter %d probability %v out of [0,1]",
					loc.Label, i+1, e.Probability))
			}
		}
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}
