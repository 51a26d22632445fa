package design

import "testing"

func TestParamsFloat(t *testing.T) {
	p := Params{
		"length":  100,
		"width":   5.5,
		"big":     int64(7),
		"comment": "not a number",
	}

	tests := []struct {
		name   string
		want   float64
		wantOK bool
	}{
		{"length", 100, true},
		{"width", 5.5, true},
		{"big", 7, true},
		{"comment", 0, false},
		{"absent", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Float(tt.name)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Float(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParamsInt(t *testing.T) {
	p := Params{
		"turns":      4,
		"wholeFloat": 3.0,
		"fraction":   2.5,
	}

	if got, ok := p.Int("turns"); !ok || got != 4 {
		t.Errorf("Int(turns) = %v, %v", got, ok)
	}
	if got, ok := p.Int("wholeFloat"); !ok || got != 3 {
		t.Errorf("Int(wholeFloat) = %v, %v", got, ok)
	}
	if _, ok := p.Int("fraction"); ok {
		t.Error("Int(fraction) should reject 2.5")
	}
}

func TestParamsString(t *testing.T) {
	p := Params{"layer": "metal2", "width": 5}

	if got, ok := p.String("layer"); !ok || got != "metal2" {
		t.Errorf("String(layer) = %v, %v", got, ok)
	}
	if _, ok := p.String("width"); ok {
		t.Error("String(width) should reject a number")
	}
}

func TestParamsIntPair(t *testing.T) {
	p := Params{
		"layer":    []any{2, 0},
		"badLen":   []any{1},
		"badElem":  []any{"x", 0},
		"notASeq":  7,
		"floatInt": []any{2.0, 1.0},
	}

	if a, b, ok := p.IntPair("layer"); !ok || a != 2 || b != 0 {
		t.Errorf("IntPair(layer) = %v, %v, %v", a, b, ok)
	}
	if a, b, ok := p.IntPair("floatInt"); !ok || a != 2 || b != 1 {
		t.Errorf("IntPair(floatInt) = %v, %v, %v", a, b, ok)
	}
	for _, key := range []string{"badLen", "badElem", "notASeq", "absent"} {
		if _, _, ok := p.IntPair(key); ok {
			t.Errorf("IntPair(%s) should fail", key)
		}
	}
}

func TestParamsHas(t *testing.T) {
	p := Params{"width": 5}
	if !p.Has("width") || p.Has("length") {
		t.Error("Has() misreports presence")
	}
}
