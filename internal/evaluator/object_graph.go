package evaluator

import (
	"fmt"

	"github.com/funvibe/refina/internal/typesystem"
)

// graphEdge is one adjacency entry. Undirected graphs store the mirror edge
// under the target vertex as well.
type graphEdge struct {
	to     keyID
	weight float64
}

// Graph is an adjacency-list graph keyed by the map identity rules. The
// directed flag is fixed at construction.
type Graph struct {
	directed bool
	order    []keyID
	vertices map[keyID]*Binder
	adj      map[keyID][]graphEdge
}

func NewGraph(directed bool) *Graph {
	return &Graph{
		directed: directed,
		vertices: make(map[keyID]*Binder),
		adj:      make(map[keyID][]graphEdge),
	}
}

func (g *Graph) Kind() typesystem.Kind { return typesystem.GRAPH_KIND }
func (g *Graph) Inspect() string {
	return fmt.Sprintf("Graph(directed=%t, vertices=%d)", g.directed, len(g.order))
}

func (g *Graph) IsDirected() bool { return g.directed }

// AddVertex inserts v; duplicates are ignored.
func (g *Graph) AddVertex(v *Binder) {
	id := keyOf(v)
	if _, ok := g.vertices[id]; ok {
		return
	}
	g.vertices[id] = v
	g.order = append(g.order, id)
}

// AddEdge connects from and to with the given weight, inserting missing
// vertices. Undirected graphs store both directions.
func (g *Graph) AddEdge(from, to *Binder, weight float64) {
	g.AddVertex(from)
	g.AddVertex(to)
	fromID, toID := keyOf(from), keyOf(to)
	g.adj[fromID] = append(g.adj[fromID], graphEdge{to: toID, weight: weight})
	if !g.directed {
		g.adj[toID] = append(g.adj[toID], graphEdge{to: fromID, weight: weight})
	}
}

func (g *Graph) HasVertex(v *Binder) bool {
	_, ok := g.vertices[keyOf(v)]
	return ok
}

func (g *Graph) HasEdge(from, to *Binder) bool {
	toID := keyOf(to)
	for _, e := range g.adj[keyOf(from)] {
		if e.to == toID {
			return true
		}
	}
	return false
}

// GetEdgeWeight returns the weight of the first edge from→to; ok is false
// when no such edge exists.
func (g *Graph) GetEdgeWeight(from, to *Binder) (float64, bool) {
	toID := keyOf(to)
	for _, e := range g.adj[keyOf(from)] {
		if e.to == toID {
			return e.weight, true
		}
	}
	return 0, false
}

// GetVertices returns the vertex binders in insertion order.
func (g *Graph) GetVertices() []*Binder {
	out := make([]*Binder, len(g.order))
	for i, id := range g.order {
		out[i] = g.vertices[id]
	}
	return out
}

// Neighbor is one outgoing adjacency entry.
type Neighbor struct {
	To     *Binder
	Weight float64
}

// GetNeighbors returns v's outgoing adjacency in insertion order.
func (g *Graph) GetNeighbors(v *Binder) []Neighbor {
	edges := g.adj[keyOf(v)]
	out := make([]Neighbor, len(edges))
	for i, e := range edges {
		out[i] = Neighbor{To: g.vertices[e.to], Weight: e.weight}
	}
	return out
}

// Edge is one stored edge. Undirected edges appear twice, once per
// direction, matching adjacency storage.
type Edge struct {
	From   *Binder
	To     *Binder
	Weight float64
}

// GetEdges returns every stored edge in vertex insertion order.
func (g *Graph) GetEdges() []Edge {
	var out []Edge
	for _, fromID := range g.order {
		for _, e := range g.adj[fromID] {
			out = append(out, Edge{From: g.vertices[fromID], To: g.vertices[e.to], Weight: e.weight})
		}
	}
	return out
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int { return len(g.order) }
