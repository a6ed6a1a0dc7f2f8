package indicator

// Noop implements Indicator but does nothing.
// Used when no indicators are configured.
type Noop struct{}

// Ready implements Indicator.Ready.
func (n *Noop) Ready() {}

// Activity implements Indicator.Activity.
func (n *Noop) Activity() {}

// Fault implements Indicator.Fault.
func (n *Noop) Fault() {}

// Release implements Indicator.Release.
func (n *Noop) Release() error {
	return nil
}
