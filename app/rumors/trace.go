package rumors

// Trace collects counters and identifier lists for the debug output. A nil *Trace
// is valid and records nothing, so callers never check whether debugging is on.
type Trace struct {
	Counters map[string]int      `json:"counters"`
	IDs      map[string][]string `json:"ids"`
}

func NewTrace() *Trace {
	return &Trace{
		Counters: make(map[string]int),
		IDs:      make(map[string][]string),
	}
}

func (t *Trace) Add(name string, n int) {
	if t == nil {
		return
	}
	t.Counters[name] += n
}

func (t *Trace) Note(name, id string) {
	if t == nil {
		return
	}
	t.IDs[name] = append(t.IDs[name], id)
}

// Child returns an empty trace for one strategy, or nil when t is nil.
func (t *Trace) Child() *Trace {
	if t == nil {
		return nil
	}
	return NewTrace()
}

// Merge adds other into t with every key prefixed by scope.
func (t *Trace) Merge(scope string, other *Trace) {
	if t == nil || other == nil {
		return
	}
	prefix := ""
	if scope != "" {
		prefix = scope + "."
	}
	for name, n := range other.Counters {
		t.Counters[prefix+name] += n
	}
	for name, ids := range other.IDs {
		t.IDs[prefix+name] = append(t.IDs[prefix+name], ids...)
	}
}
