// Package phase maps checklist progress onto a development phase label.
package phase

// Phase is a derived label describing how far a planning session has come.
type Phase string

const (
	Initialization Phase = "initialization"
	Requirements   Phase = "requirements"
	Architecture   Phase = "architecture"
	// Setup is a legal value that Classify never produces.
	Setup       Phase = "setup"
	Development Phase = "development"
	Testing     Phase = "testing"
	Deployment  Phase = "deployment"
)

var all = []Phase{
	Initialization,
	Requirements,
	Architecture,
	Setup,
	Development,
	Testing,
	Deployment,
}

// All returns every phase value in lifecycle order.
func All() []Phase {
	out := make([]Phase, len(all))
	copy(out, all)
	return out
}

// Names returns every phase value as a string.
func Names() []string {
	out := make([]string, 0, len(all))
	for _, p := range all {
		out = append(out, string(p))
	}
	return out
}

// Parse validates a phase name.
func Parse(name string) (Phase, bool) {
	for _, p := range all {
		if string(p) == name {
			return p, true
		}
	}
	return "", false
}

// Classify maps a progress percentage to a phase. Values below 0 are treated
// as 0 and values above 100 as 100.
func Classify(percentage int) Phase {
	switch {
	case percentage <= 0:
		return Initialization
	case percentage < 25:
		return Requirements
	case percentage < 50:
		return Architecture
	case percentage < 75:
		return Development
	case percentage < 90:
		return Testing
	default:
		return Deployment
	}
}
