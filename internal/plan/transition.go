package plan

import "fmt"

// Step is one crossfade in the chained merge graph. From and To are the
// engine input labels, Out the label the blended stream gets. Offset is the
// point in the running merged timeline, in seconds, at which the crossfade
// begins.
type Step struct {
	From     string  `yaml:"from"`
	To       string  `yaml:"to"`
	Out      string  `yaml:"out"`
	Style    string  `yaml:"style"`
	Duration float64 `yaml:"duration"`
	Offset   float64 `yaml:"offset"`
}

// TransitionPlan chains N segments with N-1 crossfades. An empty Steps
// slice means the sole segment is the final output and no merge is needed.
type TransitionPlan struct {
	Steps []Step  `yaml:"steps"`
	Total float64 `yaml:"total"` // expected merged duration in seconds
}

// FinalLabel is the stream the merge invocation must map as its output.
func (p TransitionPlan) FinalLabel() string {
	if len(p.Steps) == 0 {
		return "0:v"
	}
	return p.Steps[len(p.Steps)-1].Out
}

// BuildTransitions computes the chained crossfade plan for the given
// nominal segment durations. The running-total invariant is:
//
//	offset[i] = running before step i - crossfade
//	running after step i = running before + duration[i+1] - crossfade
//
// crossfade must be strictly shorter than every segment duration, otherwise
// offsets go non-monotonic and the merged graph is corrupt; that case is
// rejected here, before any rendering work happens.
func BuildTransitions(durations []float64, crossfade float64, style string) (TransitionPlan, error) {
	for i, d := range durations {
		if crossfade >= d {
			return TransitionPlan{}, fmt.Errorf("crossfade %.2fs is not shorter than segment %d (%.2fs)", crossfade, i, d)
		}
	}

	if len(durations) == 0 {
		return TransitionPlan{}, nil
	}
	if len(durations) == 1 {
		return TransitionPlan{Total: durations[0]}, nil
	}

	plan := TransitionPlan{Steps: make([]Step, 0, len(durations)-1)}
	running := durations[0]
	from := "[0:v]"
	for i := 1; i < len(durations); i++ {
		out := fmt.Sprintf("[v%d]", i)
		plan.Steps = append(plan.Steps, Step{
			From:     from,
			To:       fmt.Sprintf("[%d:v]", i),
			Out:      out,
			Style:    style,
			Duration: crossfade,
			Offset:   running - crossfade,
		})
		running += durations[i] - crossfade
		from = out
	}
	plan.Total = running
	return plan, nil
}
