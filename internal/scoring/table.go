package scoring

import "sync/atomic"

// Table holds the active scoring config and lets a reload publish a
// replacement while requests keep scoring against the snapshot they hold.
type Table struct {
	current atomic.Pointer[Config]
}

func NewTable(cfg *Config) *Table {
	t := &Table{}
	t.current.Store(cfg)
	return t
}

// Current returns the active config. Callers keep the returned snapshot for
// the whole operation so score and level come from the same table.
func (t *Table) Current() *Config {
	return t.current.Load()
}

// Replace publishes a new config atomically. In-flight readers finish on the
// snapshot they already loaded.
func (t *Table) Replace(cfg *Config) {
	t.current.Store(cfg)
}
