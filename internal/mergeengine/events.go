package mergeengine

// Notifier is the sink for run output. The engine calls it synchronously in
// traversal order and expects calls to return quickly and never fail; hosts
// that need buffering or thread marshaling do it on their side.
type Notifier interface {
	// Log delivers one human-readable line describing an action taken.
	Log(message string)
	// SetProgress reports overall completion in the range 0.0 to 1.0.
	SetProgress(value float64)
	// SetStatus names the phase the run is currently in.
	SetStatus(text string)
}

// NopNotifier discards everything. Useful when no host is listening.
type NopNotifier struct{}

func (NopNotifier) Log(string)          {}
func (NopNotifier) SetProgress(float64) {}
func (NopNotifier) SetStatus(string)    {}

// MultiNotifier fans every call out to each wrapped notifier in order.
type MultiNotifier []Notifier

func (m MultiNotifier) Log(message string) {
	for _, n := range m {
		n.Log(message)
	}
}

func (m MultiNotifier) SetProgress(value float64) {
	for _, n := range m {
		n.SetProgress(value)
	}
}

func (m MultiNotifier) SetStatus(text string) {
	for _, n := range m {
		n.SetStatus(text)
	}
}
