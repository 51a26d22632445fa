package geometry

// Placement is a resolved component pose: a position for the
// component's local origin and a counter-clockwise rotation in
// degrees, normalized to [0, 360).
type Placement struct {
	Position Point   `json:"position" bson:"position"`
	Rotation float64 `json:"rotation" bson:"rotation"`
}

// Transform returns the local-to-world transform for the placement.
func (pl Placement) Transform() Transform {
	return Place(pl.Position, pl.Rotation)
}

// Normalize returns the placement with its rotation mapped into
// [0, 360).
func (pl Placement) Normalize() Placement {
	pl.Rotation = NormalizeAngle(pl.Rotation)
	return pl
}
