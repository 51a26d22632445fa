package preview

import (
	"strings"
	"testing"

	"github.com/rfgds/rfgds/pkg/geometry"
	"github.com/rfgds/rfgds/pkg/layout"
	"github.com/rfgds/rfgds/pkg/tech"
)

var metal1 = tech.LayerID{Layer: 1, Datatype: 0}

func testLayout() *layout.Layout {
	leaf := layout.NewNode("line1")
	leaf.Polygons.Add(metal1, geometry.Box(0, -5, 100, 5))
	leaf.Ports["in"] = layout.Port{Name: "in", Position: geometry.Pt(0, 0), Width: 10, Layer: metal1, Orientation: 180}
	leaf.Ports["out"] = layout.Port{Name: "out", Position: geometry.Pt(100, 0), Width: 10, Layer: metal1, Orientation: 0}

	root := layout.NewNode("demo")
	root.AddChild(leaf, geometry.Placement{})
	return &layout.Layout{Name: "demo", Technology: "generic", Units: "um", Root: root}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Errorf("output should start with an svg tag, got %.60q", svg)
	}
	if !strings.Contains(svg, `id="layer-1-0"`) {
		t.Error("output should group polygons by layer")
	}
	if !strings.Contains(svg, "<polygon points=") {
		t.Error("output should contain polygon elements")
	}
	// Box(0,-5,100,5) padded by 10: viewBox 120 x 30.
	if !strings.Contains(svg, `viewBox="0 0 120.000 30.000"`) {
		t.Errorf("unexpected viewBox in %.200q", svg)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("output should end with a closing svg tag")
	}
}

func TestRenderSVGFlipsY(t *testing.T) {
	// With bounds padded to (-10,-15)-(110,15), the polygon corner at
	// world (0, 5) lands at svg (10, 10) and (0, -5) at svg (10, 20).
	svg := string(RenderSVG(testLayout()))
	if !strings.Contains(svg, "10.000,10.000") {
		t.Error("expected corner (0, 5) to map to svg 10.000,10.000")
	}
	if !strings.Contains(svg, "10.000,20.000") {
		t.Error("expected corner (0, -5) to map to svg 10.000,20.000")
	}
}

func TestRenderSVGScale(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithScale(2)))
	if !strings.Contains(svg, `width="240" height="60"`) {
		t.Errorf("scale 2 should double pixel size, got %.200q", svg)
	}
}

func TestRenderSVGPorts(t *testing.T) {
	plain := string(RenderSVG(testLayout()))
	if strings.Contains(plain, `id="ports"`) {
		t.Error("ports should not render without WithPorts")
	}

	svg := string(RenderSVG(testLayout(), WithPorts()))
	if !strings.Contains(svg, `id="ports"`) {
		t.Error("WithPorts should add a port group")
	}
	if !strings.Contains(svg, ">line1.in</text>") || !strings.Contains(svg, ">line1.out</text>") {
		t.Error("ports should be labeled with qualified names")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	svg := string(RenderSVG(testLayout(), WithBackground("#000000"), WithLayerColor(1, "#123456")))
	if !strings.Contains(svg, `fill="#000000"`) {
		t.Error("WithBackground should set the backdrop fill")
	}
	if !strings.Contains(svg, `fill="#123456"`) {
		t.Error("WithLayerColor should override the layer fill")
	}
}

func TestRenderSVGEmptyLayout(t *testing.T) {
	root := layout.NewNode("empty")
	l := &layout.Layout{Name: "empty", Technology: "generic", Units: "um", Root: root}

	svg := string(RenderSVG(l))
	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Errorf("empty layout should still render a frame, got %.120q", svg)
	}
}
