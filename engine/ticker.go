package engine

// Ticker abstracts something that produces processed snapshots.
type Ticker interface {
	Tick() (*Result, error)
	Base() *Engine
}

// Base returns itself for the default engine ticker.
func (e *Engine) Base() *Engine {
	return e
}
