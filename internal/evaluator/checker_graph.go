package evaluator

import (
	"math"
)

// graphHasNoNegativeCycle runs Bellman–Ford from vertex 0 (the first vertex
// in insertion order): relax all edges |V|-1 times, then any further
// relaxation means a negative cycle.
func graphHasNoNegativeCycle(g *Graph) bool {
	vertices := g.GetVertices()
	n := len(vertices)
	if n == 0 {
		return true
	}

	index := make(map[keyID]int, n)
	for i, v := range vertices {
		index[keyOf(v)] = i
	}

	type flatEdge struct {
		from, to int
		weight   float64
	}
	var edges []flatEdge
	for _, edge := range g.GetEdges() {
		edges = append(edges, flatEdge{
			from:   index[keyOf(edge.From)],
			to:     index[keyOf(edge.To)],
			weight: edge.Weight,
		})
	}

	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[0] = 0

	for i := 0; i < n-1; i++ {
		for _, edge := range edges {
			if math.IsInf(dist[edge.from], 1) {
				continue
			}
			if dist[edge.from]+edge.weight < dist[edge.to] {
				dist[edge.to] = dist[edge.from] + edge.weight
			}
		}
	}
	for _, edge := range edges {
		if math.IsInf(dist[edge.from], 1) {
			continue
		}
		if dist[edge.from]+edge.weight < dist[edge.to] {
			return false
		}
	}
	return true
}

// distanceEntry reads d[u][v] from a map-of-map; ok is false when the row
// is not a map or the entry is absent or non-numeric.
func distanceEntry(outer *MapValue, u, v *Binder) (float64, bool) {
	row := outer.Get(u)
	if row == nil {
		return 0, false
	}
	inner, ok := row.Value.(*MapValue)
	if !ok {
		return 0, false
	}
	entry := inner.Get(v)
	if entry == nil || !isNumericKind(entry.ActualKind()) {
		return 0, false
	}
	return numericOf(entry), true
}

// distanceToSelfZero holds when every present d[u][u] entry is zero. Rows
// that are not maps are skipped.
func distanceToSelfZero(outer *MapValue) bool {
	for _, u := range outer.Keys() {
		d, ok := distanceEntry(outer, u, u)
		if !ok {
			continue
		}
		if d != 0 {
			return false
		}
	}
	return true
}

// triangleInequality holds when d[u][v] <= d[u][k] + d[k][v] for every
// u, v, k with all three entries defined. The vertex set is the union of
// outer keys and the keys of every map-typed row.
func triangleInequality(outer *MapValue) bool {
	var vertices []*Binder
	seen := make(map[keyID]bool)
	add := func(v *Binder) {
		id := keyOf(v)
		if !seen[id] {
			seen[id] = true
			vertices = append(vertices, v)
		}
	}
	for _, u := range outer.Keys() {
		add(u)
		if row, ok := outer.Get(u).Value.(*MapValue); ok {
			for _, v := range row.Keys() {
				add(v)
			}
		}
	}

	for _, u := range vertices {
		for _, v := range vertices {
			duv, ok := distanceEntry(outer, u, v)
			if !ok {
				continue
			}
			for _, k := range vertices {
				duk, ok1 := distanceEntry(outer, u, k)
				dkv, ok2 := distanceEntry(outer, k, v)
				if !ok1 || !ok2 {
					continue
				}
				if duv > duk+dkv {
					return false
				}
			}
		}
	}
	return true
}
