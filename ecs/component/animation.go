package component

// AnimationIntent is the latest animation the controller asked for. Serial
// increments on every issue so renderers can restart one-shot clips even
// when the same intent repeats.
type AnimationIntent struct {
	Current IntentID
	Serial  uint64
}

func (a *AnimationIntent) Issue(id IntentID) {
	if a == nil {
		return
	}
	a.Current = id
	a.Serial++
}

var AnimationIntentComponent = NewComponent[AnimationIntent]()
