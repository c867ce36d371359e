package vm

// Globals is the shared global environment. Every declared binding lives
// here; per-frame local slots exist in the frame shape but the current
// lowering does not allocate them.
type Globals struct {
	values map[string]Value
}

func NewGlobals() *Globals {
	return &Globals{values: make(map[string]Value)}
}

func (g *Globals) Get(name string) (Value, bool) {
	v, ok := g.values[name]
	return v, ok
}

func (g *Globals) Set(name string, v Value) {
	g.values[name] = v
}

func (g *Globals) Has(name string) bool {
	_, ok := g.values[name]
	return ok
}

// Len reports the number of defined globals.
func (g *Globals) Len() int {
	return len(g.values)
}
