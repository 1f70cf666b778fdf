package sprite

import "fmt"

// transitions lists every legal ghost mode change.
var transitions = map[Status][]Status{
	Normal:      {Scared, Eaten, Caged, Zombie},
	Scared:      {Normal, Eaten, Zombie},
	Eaten:       {Normal, Zombie},
	Caged:       {LeavingCage, Normal, Eaten, Zombie},
	LeavingCage: {Normal, Scared, Eaten, Zombie},
	Zombie:      {},
}

// CanTransition reports whether a ghost may go from one mode to another.
// Staying in the same mode is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		_, ok := transitions[from]
		return ok
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ModeCounts is the number of live ghosts in each mode. The model owns one
// and every ghost it creates keeps it current.
type ModeCounts struct {
	n [numStatuses]int
}

// Count returns how many ghosts are in mode s.
func (c *ModeCounts) Count(s Status) int {
	if s < 0 || s >= numStatuses {
		return 0
	}
	return c.n[s]
}

// Total returns the number of tracked ghosts.
func (c *ModeCounts) Total() int {
	t := 0
	for _, v := range c.n {
		t += v
	}
	return t
}

// Threatening reports whether any ghost can still kill the player.
func (c *ModeCounts) Threatening() bool {
	return c.n[Normal]+c.n[LeavingCage] > 0
}

// Reset forgets every ghost.
func (c *ModeCounts) Reset() {
	c.n = [numStatuses]int{}
}

// Snapshot returns the counts keyed by mode name.
func (c *ModeCounts) Snapshot() map[string]int {
	out := make(map[string]int, numStatuses)
	for s := Normal; s < numStatuses; s++ {
		out[s.String()] = c.n[s]
	}
	return out
}

func (c *ModeCounts) add(s Status) {
	c.n[s]++
}

func (c *ModeCounts) remove(s Status) {
	if c.n[s] == 0 {
		panic(fmt.Sprintf("mode counts: no ghost in %v to remove", s))
	}
	c.n[s]--
}

func (c *ModeCounts) move(from, to Status) {
	c.remove(from)
	c.add(to)
}
