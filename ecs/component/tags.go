package component

type WallTag struct{}

var WallTagComponent = NewComponent[WallTag]()

// Inoperable marks a fighter that failed setup. Systems skip it.
type Inoperable struct {
	Reason string
}

var InoperableComponent = NewComponent[Inoperable]()

// Subscriptions holds the release funcs for a fighter's event handlers.
type Subscriptions struct {
	Release []func()
}

func (s *Subscriptions) Add(release func()) {
	if s == nil || release == nil {
		return
	}
	s.Release = append(s.Release, release)
}

// ReleaseAll runs every release func once and forgets them.
func (s *Subscriptions) ReleaseAll() {
	if s == nil {
		return
	}
	for _, release := range s.Release {
		release()
	}
	s.Release = nil
}

var SubscriptionsComponent = NewComponent[Subscriptions]()
