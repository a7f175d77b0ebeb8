package glide

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Index  int     `json:"index,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected pointer input and engine commands across
// frames for automated testing. Attach to an Engine via SetTestRunner.
//
// Actions: "press", "move", "release" (x, y), "drag" (fromX, fromY, toX, toY,
// frames), "wait" (frames), "snap" (index), "refresh", "screenshot" (label),
// and "expectCenter" (index), which records a failure when the centered
// element differs.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	failures  []string
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Engine via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "move", "release", "drag", "wait", "snap", "refresh", "screenshot", "expectCenter":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Failures returns the messages recorded by failed expectations.
func (r *TestRunner) Failures() []string {
	return r.failures
}

// step advances the test runner by one frame. Called from Engine.Step.
func (r *TestRunner) step(e *Engine) {
	if r.done {
		return
	}
	v := e.View
	// Wait for pending injections to drain before advancing.
	if v.PendingInjections() > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		v.InjectPress(st.X, st.Y)
	case "move":
		v.InjectMove(st.X, st.Y)
	case "release":
		v.InjectRelease(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		v.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "snap":
		e.SnapTo(st.Index)
	case "refresh":
		e.ForceRefreshLayout()
	case "screenshot":
		e.Screenshot(st.Label)
	case "expectCenter":
		got, ok := e.CurrentCenterIndex()
		if !ok || got != st.Index {
			msg := fmt.Sprintf("step %d: expected center %d, got %d", r.cursor-1, st.Index, got)
			if st.Label != "" {
				msg = st.Label + ": " + msg
			}
			r.failures = append(r.failures, msg)
			logger.Warn("test script expectation failed", "step", r.cursor-1, "want", st.Index, "got", got)
		}
	}

	// Check if we've reached the end after executing.
	if r.cursor >= len(r.steps) && r.waitCount == 0 && v.PendingInjections() == 0 {
		r.done = true
	}
}
