//go:build !linux

package mpris

// Adapter only tracks the attached player: there is no session bus to
// publish it on.
type Adapter struct {
	controls *controls
}

// New returns an adapter that serves no media keys.
func New() (*Adapter, error) {
	return &Adapter{controls: &controls{}}, nil
}

// Attach routes media keys to p. Nothing sends any on this platform.
func (a *Adapter) Attach(p Player, meta Metadata) {
	a.controls.attach(p, meta)
}

// Close detaches the current player.
func (a *Adapter) Close() error {
	a.controls.attach(nil, Metadata{})
	return nil
}
