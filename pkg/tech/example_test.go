package tech_test

import (
	"fmt"
	"strings"

	"github.com/rfgds/rfgds/pkg/tech"
)

func ExampleTechnology_Layer() {
	t := tech.Generic()

	id, err := t.Layer(tech.RoleMetal1)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("metal1 -> (%d, %d)\n", id.Layer, id.Datatype)
	// Output:
	// metal1 -> (1, 0)
}

func ExampleLoad() {
	source := `
name = "ipd"
description = "Thin-film IPD process"

[layers.metal1]
number = 10
datatype = 0

[rules]
min_width_metal1 = 5.0
`

	t, err := tech.Load(strings.NewReader(source))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	id, _ := t.Layer("metal1")
	minWidth, _ := t.Rule("min_width_metal1")
	fmt.Println("Technology:", t.Name)
	fmt.Printf("metal1 -> (%d, %d)\n", id.Layer, id.Datatype)
	fmt.Println("min width:", minWidth)
	// Output:
	// Technology: ipd
	// metal1 -> (10, 0)
	// min width: 5
}
