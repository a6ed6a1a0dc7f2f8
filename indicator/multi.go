package indicator

// Multi combines multiple Indicator implementations.
type Multi struct {
	indicators []Indicator
}

// NewMulti combines the given indicators into one.
func NewMulti(indicators ...Indicator) *Multi {
	return &Multi{indicators: indicators}
}

// Ready implements Indicator.Ready.
func (m *Multi) Ready() {
	for _, ind := range m.indicators {
		ind.Ready()
	}
}

// Activity implements Indicator.Activity.
func (m *Multi) Activity() {
	for _, ind := range m.indicators {
		ind.Activity()
	}
}

// Fault implements Indicator.Fault.
func (m *Multi) Fault() {
	for _, ind := range m.indicators {
		ind.Fault()
	}
}

// Release implements Indicator.Release.
func (m *Multi) Release() error {
	var lastErr error
	for _, ind := range m.indicators {
		if err := ind.Release(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}
