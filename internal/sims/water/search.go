package water

const (
	notVisited = -1
	rootParent = -2
)

// search is the state of one target-resolution attempt. cameFrom is dense
// over the grid; visited lists its populated keys so teardown is
// proportional to the session, not the grid.
type search struct {
	target    int
	threshold int

	cameFrom []int
	visited  []int
	frontier []int
	head     int
}

func newSearch(n int) search {
	s := search{target: -1, cameFrom: make([]int, n)}
	for i := range s.cameFrom {
		s.cameFrom[i] = notVisited
	}
	return s
}

func (s *search) active() bool { return s.target >= 0 }

func (s *search) frontierEmpty() bool { return s.head >= len(s.frontier) }

func (s *search) begin(target, threshold int) {
	s.target = target
	s.threshold = threshold
	s.mark(target, rootParent)
}

func (s *search) seen(i int) bool { return s.cameFrom[i] != notVisited }

// mark records parent as the back-pointer of i and queues i for expansion.
func (s *search) mark(i, parent int) {
	s.cameFrom[i] = parent
	s.visited = append(s.visited, i)
	s.frontier = append(s.frontier, i)
}

func (s *search) pop() int {
	i := s.frontier[s.head]
	s.head++
	return i
}

// end clears the session and zeroes the flow of every visited cell.
func (s *search) end(cells []Cell) {
	for _, i := range s.visited {
		cells[i].Flow = 0
		s.cameFrom[i] = notVisited
	}
	s.visited = s.visited[:0]
	s.frontier = s.frontier[:0]
	s.head = 0
	s.target = -1
	s.threshold = 0
}

func (s *search) pending() []int {
	return append([]int(nil), s.frontier[s.head:]...)
}
