package pipeline

import (
	"fmt"
	"os"

	"github.com/rfgds/rfgds/pkg/design"
	"github.com/rfgds/rfgds/pkg/tech"
)

// Parse loads the design, validates it, and resolves its technology.
// The raw design bytes are returned alongside so callers can derive
// content-addressed cache keys from them.
func Parse(opts Options) (*design.Design, *tech.Technology, []byte, error) {
	raw, err := designSource(opts)
	if err != nil {
		return nil, nil, nil, err
	}

	d, err := design.Parse(raw)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, nil, nil, err
	}

	t, err := resolveTechnology(d, opts)
	if err != nil {
		return nil, nil, nil, err
	}

	return d, t, raw, nil
}

// designSource returns the raw design bytes, preferring inline source
// over a file path.
func designSource(opts Options) ([]byte, error) {
	if len(opts.DesignSource) > 0 {
		return opts.DesignSource, nil
	}
	raw, err := os.ReadFile(opts.DesignPath)
	if err != nil {
		return nil, fmt.Errorf("read design %s: %w", opts.DesignPath, err)
	}
	return raw, nil
}

// resolveTechnology picks the technology for a run. A TechFile wins over
// everything; a Technology override wins over the design's own choice;
// otherwise the design's technology is looked up in the registry.
func resolveTechnology(d *design.Design, opts Options) (*tech.Technology, error) {
	if opts.TechFile != "" {
		t, err := tech.LoadFile(opts.TechFile)
		if err != nil {
			return nil, err
		}
		return t, nil
	}

	name := d.Technology
	if opts.Technology != "" {
		name = opts.Technology
	}
	t, err := tech.Get(name)
	if err != nil {
		return nil, err
	}
	return t, nil
}
