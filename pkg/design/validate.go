package design

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks the design's structure and reports every problem it
// finds as a single aggregated error, or nil if the design is sound.
// It does not check generator-specific parameters or placement
// consistency - those belong to generation and resolution, which apply
// the same collect-everything policy.
func (d *Design) Validate() error {
	var result *multierror.Error

	if d.Name == "" {
		result = multierror.Append(result, fmt.Errorf("missing required field: name"))
	}
	if d.Technology == "" {
		result = multierror.Append(result, fmt.Errorf("missing required field: technology"))
	}
	if d.Components == nil {
		result = multierror.Append(result, fmt.Errorf("missing required field: components"))
	}

	seen := make(map[string]bool, len(d.Components))
	for i, c := range d.Components {
		label := c.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if c.Name == "" {
			result = multierror.Append(result, fmt.Errorf("component %s: missing required field: name", label))
		} else if seen[c.Name] {
			result = multierror.Append(result, fmt.Errorf("component %s: duplicate component name", label))
		}
		seen[c.Name] = true

		if c.Type == "" {
			result = multierror.Append(result, fmt.Errorf("component %s: missing required field: type", label))
		}

		for j, conn := range c.Connections {
			if conn.Port == "" {
				result = multierror.Append(result, fmt.Errorf("component %s: connection %d: missing required field: port", label, j))
			}
			if conn.Target == "" {
				result = multierror.Append(result, fmt.Errorf("component %s: connection %d: missing required field: target", label, j))
			}
			if conn.TargetPort == "" {
				result = multierror.Append(result, fmt.Errorf("component %s: connection %d: missing required field: target_port", label, j))
			}
		}
	}

	return result.ErrorOrNil()
}
