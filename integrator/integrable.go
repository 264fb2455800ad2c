package integrator

// Integrable defines something which can be integrated, i.e. has a state vector.
// WARNING: Implementation must manage its own state based on the iteration.
type Integrable interface {
	GetState() []float64                   // Get the latest state of this integrable.
	SetState(r float64, s []float64)       // Set the state s reached at abscissa r.
	Stop(r float64) bool                   // Return whether to stop the integration at abscissa r.
	Func(r float64, s []float64) []float64 // ODE function from abscissa r and state s, must return the derivative of the state.
}
