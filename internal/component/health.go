package component

// Health is mutated by damage actions and read by the health system, which
// flags the entity for destruction once Current <= 0.
type Health struct {
	Current float64
	Max     float64
}
