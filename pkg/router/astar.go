package router

import (
	"container/heap"
	"math"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/geometry"
)

// gridNode addresses a cell on the routing grid, in pitch units relative
// to the search origin.
type gridNode struct {
	x, y int
}

// findGridPath runs A* between two board-space points over an implicit
// grid aligned to the start point. Moves are 4-directional, the heuristic
// is Manhattan distance to the goal, and expansion is capped so the
// search always terminates. Returns the simplified polyline and true, or
// nil and false when the goal was not reached.
func findGridPath(start, goal geometry.Point, pitch float64, blocked func(geometry.Point) bool, maxExpansions int) ([]geometry.Point, bool) {
	if pitch <= 0 {
		return nil, false
	}

	toPoint := func(n gridNode) geometry.Point {
		return geometry.Point{
			X: start.X + float64(n.x)*pitch,
			Y: start.Y + float64(n.y)*pitch,
		}
	}

	startNode := gridNode{0, 0}
	goalNode := gridNode{
		x: int(math.Round((goal.X - start.X) / pitch)),
		y: int(math.Round((goal.Y - start.Y) / pitch)),
	}

	if startNode == goalNode {
		return []geometry.Point{start, goal}, true
	}
	if blocked(start) || blocked(toPoint(goalNode)) {
		return nil, false
	}

	heuristic := func(n gridNode) float64 {
		return math.Abs(float64(goalNode.x-n.x)) + math.Abs(float64(goalNode.y-n.y))
	}

	gScore := map[gridNode]float64{startNode: 0}
	cameFrom := make(map[gridNode]gridNode)
	visited := make(map[gridNode]bool)

	pq := &searchQueue{}
	heap.Init(pq)
	heap.Push(pq, &searchItem{node: startNode, f: heuristic(startNode)})

	neighbors := [4]gridNode{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	expansions := 0

	for pq.Len() > 0 {
		item := heap.Pop(pq).(*searchItem)
		cur := item.node

		if cur == goalNode {
			return reconstruct(cameFrom, cur, start, goal, toPoint), true
		}

		if visited[cur] {
			continue
		}
		visited[cur] = true

		expansions++
		if expansions > maxExpansions {
			return nil, false
		}

		curG := gScore[cur]

		for _, d := range neighbors {
			next := gridNode{cur.x + d.x, cur.y + d.y}
			if visited[next] {
				continue
			}
			if blocked(toPoint(next)) {
				continue
			}

			tentative := curG + 1
			prev, seen := gScore[next]
			if !seen || tentative < prev {
				gScore[next] = tentative
				cameFrom[next] = cur
				heap.Push(pq, &searchItem{node: next, f: tentative + heuristic(next)})
			}
		}
	}

	return nil, false
}

// reconstruct walks the came-from chain back to the start, replaces the
// grid-snapped endpoints with the exact pad positions, and collapses
// collinear waypoints.
func reconstruct(cameFrom map[gridNode]gridNode, end gridNode, start, goal geometry.Point, toPoint func(gridNode) geometry.Point) []geometry.Point {
	var path []geometry.Point
	n := end
	for {
		path = append(path, toPoint(n))
		prev, ok := cameFrom[n]
		if !ok {
			break
		}
		n = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	path[0] = start
	path[len(path)-1] = goal
	return geometry.SimplifyCollinear(path)
}

// searchItem is a node in the A* priority queue.
type searchItem struct {
	node  gridNode
	f     float64
	index int
}

// searchQueue implements heap.Interface for A* search.
type searchQueue []*searchItem

func (pq searchQueue) Len() int           { return len(pq) }
func (pq searchQueue) Less(i, j int) bool { return pq[i].f < pq[j].f }
func (pq searchQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *searchQueue) Push(x interface{}) {
	n := len(*pq)
	item := x.(*searchItem)
	item.index = n
	*pq = append(*pq, item)
}

func (pq *searchQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*pq = old[:n-1]
	return item
}
