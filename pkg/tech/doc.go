// Package tech describes fabrication technologies: the mapping from
// logical layer roles (metal1, via12, resistor, ...) to physical GDS
// layer/datatype pairs, plus named design-rule values.
//
// Component generators never hard-code layer numbers. They ask the
// active [Technology] for a role; asking for an unmapped role fails
// with an [UnmappedLayerError] carrying the role and technology name.
//
// A built-in generic technology ships with the package and is always
// registered. Additional technologies are described in TOML files and
// loaded with [Load] or [LoadFile]:
//
//	name = "ihp_sg13"
//	description = "Example process"
//
//	[layers.metal1]
//	number = 8
//	datatype = 0
//
//	[rules]
//	min_width_metal1 = 1.2
package tech
