package testutil

// SeqSource is a scripted rng.Source: Float64 and IntN return queued values
// in order and fall back to Default/0 when the queue is empty.
type SeqSource struct {
	Floats  []float64
	Ints    []int
	Default float64
}

// Float64 returns the next queued float.
func (s *SeqSource) Float64() float64 {
	if len(s.Floats) == 0 {
		return s.Default
	}
	v := s.Floats[0]
	s.Floats = s.Floats[1:]
	return v
}

// IntN returns the next queued int modulo n.
func (s *SeqSource) IntN(n int) int {
	if len(s.Ints) == 0 {
		return 0
	}
	v := s.Ints[0]
	s.Ints = s.Ints[1:]
	if v < 0 {
		v = -v
	}
	return v % n
}

// NeverSource never passes a probability roll and always picks index 0.
func NeverSource() *SeqSource {
	return &SeqSource{Default: 0.999999}
}

// AlwaysSource passes every probability roll below 1.
func AlwaysSource() *SeqSource {
	return &SeqSource{Default: 0}
}
