package netlist

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/OpenTraceLab/OpenTraceLayout/pkg/pcb"
)

// Net represents a connected set of pads sharing the same electrical net.
type Net struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Pads []pcb.PadRef `json:"pads"`
}

// Netlist groups pad references into electrical nets using a union-find
// structure. Connect pads as connections are discovered, then call
// Finalize to materialize the nets.
type Netlist struct {
	parent map[string]string
	rank   map[string]int
	names  map[string]string // root key -> preferred net name

	// Final nets after calling Finalize().
	Nets []*Net

	allPads []pcb.PadRef
	padKeys map[string]pcb.PadRef
}

// NewNetlist creates a netlist over the given pads. Initially every pad
// is in its own isolated net.
func NewNetlist(pads []pcb.PadRef) *Netlist {
	nl := &Netlist{
		parent:  make(map[string]string),
		rank:    make(map[string]int),
		names:   make(map[string]string),
		allPads: make([]pcb.PadRef, len(pads)),
		padKeys: make(map[string]pcb.PadRef),
	}

	copy(nl.allPads, pads)

	for _, pad := range pads {
		key := padKey(pad)
		nl.parent[key] = key
		nl.rank[key] = 0
		nl.padKeys[key] = pad
	}

	return nl
}

// Connect marks two pads as electrically connected, merging their nets.
// An optional net name is kept for the merged net; earlier names win.
func (nl *Netlist) Connect(a, b pcb.PadRef, name string) {
	rootA := nl.find(padKey(a))
	rootB := nl.find(padKey(b))

	if rootA == rootB {
		if name != "" && nl.names[rootA] == "" {
			nl.names[rootA] = name
		}
		return
	}

	// Union by rank.
	var root, child string
	if nl.rank[rootA] < nl.rank[rootB] {
		root, child = rootB, rootA
	} else {
		root, child = rootA, rootB
		if nl.rank[rootA] == nl.rank[rootB] {
			nl.rank[rootA]++
		}
	}
	nl.parent[child] = root

	merged := nl.names[root]
	if merged == "" {
		merged = nl.names[child]
	}
	if merged == "" {
		merged = name
	}
	nl.names[root] = merged
	delete(nl.names, child)
}

// Connected reports whether two pads are currently in the same net.
func (nl *Netlist) Connected(a, b pcb.PadRef) bool {
	return nl.find(padKey(a)) == nl.find(padKey(b))
}

// find returns the root key with path compression.
func (nl *Netlist) find(key string) string {
	root := key
	for nl.parent[root] != root {
		root = nl.parent[root]
	}
	current := key
	for current != root {
		next := nl.parent[current]
		nl.parent[current] = root
		current = next
	}
	return root
}

// Finalize builds the final net list. Single-pad "nets" are skipped;
// they are isolated pads, not nets. Nets are ordered deterministically
// by their first pad.
func (nl *Netlist) Finalize() {
	netMap := make(map[string][]pcb.PadRef)
	for _, pad := range nl.allPads {
		root := nl.find(padKey(pad))
		netMap[root] = append(netMap[root], pad)
	}

	roots := make([]string, 0, len(netMap))
	for root, pads := range netMap {
		if len(pads) < 2 {
			continue
		}
		roots = append(roots, root)
	}
	sort.Strings(roots)

	nl.Nets = make([]*Net, 0, len(roots))
	for i, root := range roots {
		pads := netMap[root]
		sort.Slice(pads, func(a, b int) bool {
			if pads[a].ComponentID != pads[b].ComponentID {
				return pads[a].ComponentID < pads[b].ComponentID
			}
			return pads[a].PadIndex < pads[b].PadIndex
		})

		name := nl.names[root]
		if name == "" {
			name = fmt.Sprintf("net-%03d", i+1)
		}
		nl.Nets = append(nl.Nets, &Net{ID: i, Name: name, Pads: pads})
	}
}

// NetCount returns the number of nets. Only valid after Finalize.
func (nl *Netlist) NetCount() int {
	return len(nl.Nets)
}

// ExportJSON exports the finalized netlist to JSON.
func (nl *Netlist) ExportJSON() ([]byte, error) {
	if nl.Nets == nil {
		return nil, fmt.Errorf("netlist: not finalized")
	}

	output := struct {
		Version  string `json:"version"`
		NetCount int    `json:"net_count"`
		Nets     []*Net `json:"nets"`
	}{
		Version:  "1.0",
		NetCount: nl.NetCount(),
		Nets:     nl.Nets,
	}

	return json.MarshalIndent(output, "", "  ")
}

// padKey generates a unique string key for a PadRef.
func padKey(pad pcb.PadRef) string {
	return fmt.Sprintf("%s:%d", pad.ComponentID, pad.PadIndex)
}
