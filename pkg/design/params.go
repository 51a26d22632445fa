package design

// Params is a component's free-form parameter set as parsed from YAML.
// Values are scalars (numbers, strings, booleans) or small sequences.
// Parameter sets are treated as read-only once a component has been
// instantiated; generators take typed views of them and never write
// back.
type Params map[string]any

// Has reports whether the parameter is present.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// Float reads a numeric parameter. YAML decodes whole numbers as
// integers, so both int and float forms are accepted.
func (p Params) Float(name string) (float64, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// Int reads an integer parameter. Float values with no fractional part
// are accepted, matching YAML's loose numeric typing.
func (p Params) Int(name string) (int, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// String reads a string parameter.
func (p Params) String(name string) (string, bool) {
	v, ok := p[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// IntPair reads a two-element integer sequence, e.g. an explicit
// [layer, datatype] override.
func (p Params) IntPair(name string) (a, b int, ok bool) {
	v, present := p[name]
	if !present {
		return 0, 0, false
	}
	seq, isSeq := v.([]any)
	if !isSeq || len(seq) != 2 {
		return 0, 0, false
	}
	first, ok1 := asInt(seq[0])
	second, ok2 := asInt(seq[1])
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return first, second, true
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
