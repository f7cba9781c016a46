package meshgraph

// vertexHeap is a binary min-heap of vertices keyed by tentative
// distance. A vertex-to-slot map makes DecreaseKey and Contains
// O(log n) and O(1) instead of linear scans, which matters for graphs
// with tens of thousands of vertices.
type vertexHeap struct {
	entries []heapEntry
	slots   map[int]int // vertex -> index in entries
}

type heapEntry struct {
	vertex   int
	distance float64
}

func newVertexHeap(capacity int) *vertexHeap {
	return &vertexHeap{
		entries: make([]heapEntry, 0, capacity),
		slots:   make(map[int]int, capacity),
	}
}

func (h *vertexHeap) Len() int {
	return len(h.entries)
}

func (h *vertexHeap) Contains(vertex int) bool {
	_, ok := h.slots[vertex]
	return ok
}

// Insert adds a vertex with its tentative distance
func (h *vertexHeap) Insert(vertex int, distance float64) {
	h.entries = append(h.entries, heapEntry{vertex: vertex, distance: distance})
	h.slots[vertex] = len(h.entries) - 1
	h.siftUp(len(h.entries) - 1)
}

// ExtractMin removes and returns the vertex with the smallest distance
func (h *vertexHeap) ExtractMin() (int, float64) {
	top := h.entries[0]
	last := len(h.entries) - 1
	h.swap(0, last)
	h.entries = h.entries[:last]
	delete(h.slots, top.vertex)
	if last > 0 {
		h.siftDown(0)
	}
	return top.vertex, top.distance
}

// DecreaseKey lowers the distance of a vertex already in the heap.
// Calls with a distance that is not smaller are ignored.
func (h *vertexHeap) DecreaseKey(vertex int, distance float64) {
	slot, ok := h.slots[vertex]
	if !ok || distance >= h.entries[slot].distance {
		return
	}
	h.entries[slot].distance = distance
	h.siftUp(slot)
}

func (h *vertexHeap) swap(i, j int) {
	h.entries[i], h.entries[j] = h.entries[j], h.entries[i]
	h.slots[h.entries[i].vertex] = i
	h.slots[h.entries[j].vertex] = j
}

func (h *vertexHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.entries[parent].distance <= h.entries[i].distance {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *vertexHeap) siftDown(i int) {
	n := len(h.entries)
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2
		if left < n && h.entries[left].distance < h.entries[smallest].distance {
			smallest = left
		}
		if right < n && h.entries[right].distance < h.entries[smallest].distance {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.swap(i, smallest)
		i = smallest
	}
}
