package component

// Motion records this tick's horizontal movement request and what the
// collision primitive actually allowed.
type Motion struct {
	Requested float64
	Achieved  float64
}

func (m *Motion) Clear() {
	if m == nil {
		return
	}
	m.Requested = 0
	m.Achieved = 0
}

var MotionComponent = NewComponent[Motion]()
