package dice

// Source is the randomness trait every combat and recovery roll goes
// through. *Roller is the production implementation; tests may substitute
// a Scripted source to pin a sequence of results.
type Source interface {
	RollD6() int
	Roll2D6() int
	RollD3() int
	RollMultipleD6(n int) []int
	RollWithThreshold(threshold int) (int, bool)
	RollWithModifier(threshold, modifier int) (natural int, modified int, success bool)
}

var _ Source = (*Roller)(nil)

// Scripted replays a fixed sequence of D6 results, looping once exhausted.
// Roll2D6/RollD3/RollMultipleD6/threshold helpers all derive from the same
// underlying sequence, so tests can construct deterministic scenarios
// without depending on a particular seed's statistical behavior.
type Scripted struct {
	rolls []int
	next  int
}

// NewScripted builds a Source that returns rolls in order, wrapping back to
// the start once the sequence is exhausted.
func NewScripted(rolls ...int) *Scripted {
	return &Scripted{rolls: rolls}
}

func (s *Scripted) take() int {
	if len(s.rolls) == 0 {
		return 1
	}
	v := s.rolls[s.next%len(s.rolls)]
	s.next++
	return v
}

func (s *Scripted) RollD6() int { return s.take() }

func (s *Scripted) Roll2D6() int { return s.RollD6() + s.RollD6() }

func (s *Scripted) RollD3() int {
	v := s.take()
	if v > 3 {
		v = ((v - 1) % 3) + 1
	}
	return v
}

func (s *Scripted) RollMultipleD6(n int) []int {
	results := make([]int, n)
	for i := range results {
		results[i] = s.RollD6()
	}
	return results
}

func (s *Scripted) RollWithThreshold(threshold int) (int, bool) {
	roll := s.RollD6()
	if roll == 1 {
		return roll, false
	}
	return roll, roll >= threshold
}

func (s *Scripted) RollWithModifier(threshold, modifier int) (natural int, modified int, success bool) {
	natural = s.RollD6()
	if natural == 1 {
		return natural, natural + modifier, false
	}
	modified = natural + modifier
	return natural, modified, modified >= threshold
}

var _ Source = (*Scripted)(nil)
