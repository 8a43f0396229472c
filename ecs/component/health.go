package component

// Health is the hit-point ledger for one fighter.
type Health struct {
	Max     float64
	Current float64
	Dead    bool

	// OnDeath runs once, on the call that first brings Current to 0.
	OnDeath func(h *Health)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max float64) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// Alive reports whether the fighter still has hit points.
func (h *Health) Alive() bool {
	return h != nil && !h.Dead
}

// ApplyDamage subtracts amount, clamping at zero. Returns true if hit points
// changed. Calls after death are no-ops.
func (h *Health) ApplyDamage(amount float64) bool {
	if h == nil || h.Dead || !(amount > 0) {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
	}
	return true
}

// Reset restores full health and revives.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	if h.Max <= 0 {
		h.Max = 1
	}
	h.Current = h.Max
	h.Dead = false
}

// Fraction returns Current/Max in [0, 1], for health bars.
func (h *Health) Fraction() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

var HealthComponent = NewComponent[Health]()
