package resolve

import (
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/rfgds/rfgds/pkg/design"
)

// edge is one half of a connection: traversing it places the component
// at to from the component at from. reverse marks the half that runs
// against the declared direction.
type edge struct {
	to       int
	fromPort string
	toPort   string
	reverse  bool
}

// graph is the undirected connectivity structure over a design's
// components. Component indices follow design order throughout, which
// keeps traversal, and with it resolution, deterministic.
type graph struct {
	components []*design.Component
	adj        [][]edge
}

// buildGraph indexes the design's components and materializes each
// declared connection as a pair of directed half-edges. Connections
// whose target is not a component of the design are collected into one
// aggregated error.
func buildGraph(d *design.Design) (*graph, error) {
	g := &graph{
		components: d.Components,
		adj:        make([][]edge, len(d.Components)),
	}

	index := make(map[string]int, len(d.Components))
	for i, c := range d.Components {
		index[c.Name] = i
	}

	var result *multierror.Error
	for i, c := range d.Components {
		for _, conn := range c.Connections {
			j, ok := index[conn.Target]
			if !ok {
				result = multierror.Append(result, fmt.Errorf(
					"component %s: connection from port %q targets unknown component %q",
					c.Name, conn.Port, conn.Target))
				continue
			}
			g.adj[i] = append(g.adj[i], edge{to: j, fromPort: conn.Port, toPort: conn.TargetPort})
			g.adj[j] = append(g.adj[j], edge{to: i, fromPort: conn.TargetPort, toPort: conn.Port, reverse: true})
		}
	}
	return g, result.ErrorOrNil()
}

// subgraphs partitions the components into connected subgraphs. Each
// subgraph lists its member indices in design order; subgraphs are
// ordered by their first member.
func (g *graph) subgraphs() [][]int {
	visited := make([]bool, len(g.components))
	var subs [][]int

	for start := range g.components {
		if visited[start] {
			continue
		}
		members := []int{start}
		visited[start] = true
		for frontier := 0; frontier < len(members); frontier++ {
			for _, e := range g.adj[members[frontier]] {
				if !visited[e.to] {
					visited[e.to] = true
					members = append(members, e.to)
				}
			}
		}
		slices.Sort(members)
		subs = append(subs, members)
	}
	return subs
}
