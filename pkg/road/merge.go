package road

// Merger joins segments which continue each other (the end node of one is the start node of the other)
// and share their type, direction and speed limit. Segments with less than two nodes are dropped.
type Merger struct {
	roads           []*Segment
	mergeCount      int
	unmergableCount int
}

func NewMerger(roads []*Segment) *Merger {
	return &Merger{
		roads: roads,
	}
}

func (m *Merger) Merge() {
	// start node -> segments starting there
	nodeToSegments := make(map[int64][]*Segment)
	for _, seg := range m.roads {
		if len(seg.Nodes) < 2 {
			m.unmergableCount++
			continue
		}
		nodeToSegments[seg.Start()] = append(nodeToSegments[seg.Start()], seg)
	}

	merged := make(map[*Segment]bool)
	var newRoads []*Segment

	for _, seg := range m.roads {
		if len(seg.Nodes) < 2 || merged[seg] {
			continue
		}
		merged[seg] = true

		current := seg
		for {
			var next *Segment
			for _, candidate := range nodeToSegments[current.End()] {
				if !merged[candidate] && canMerge(current, candidate) {
					next = candidate
					break
				}
			}
			if next == nil {
				break
			}
			current = mergeTwoSegments(current, next)
			merged[next] = true
			m.mergeCount++
		}

		newRoads = append(newRoads, current)
	}

	m.roads = newRoads
}

func canMerge(s1, s2 *Segment) bool {
	return s1.Type == s2.Type &&
		s1.OneWay == s2.OneWay &&
		s1.MaxSpeed == s2.MaxSpeed
}

func mergeTwoSegments(s1, s2 *Segment) *Segment {
	merged := &Segment{
		ID:       s1.ID,
		Type:     s1.Type,
		OneWay:   s1.OneWay,
		MaxSpeed: s1.MaxSpeed,
		Tags:     s1.Tags,
	}

	merged.Nodes = make([]Node, 0, len(s1.Nodes)+len(s2.Nodes)-1)
	merged.Nodes = append(merged.Nodes, s1.Nodes...)
	merged.Nodes = append(merged.Nodes, s2.Nodes[1:]...) // the first node of s2 is the last node of s1
	return merged
}

func (m *Merger) Roads() []*Segment {
	return m.roads
}

func (m *Merger) MergeCount() int {
	return m.mergeCount
}

func (m *Merger) UnmergableRoadCount() int {
	return m.unmergableCount
}
