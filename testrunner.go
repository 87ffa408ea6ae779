package quickswipe

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	ID     int     `json:"id,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Ms     int     `json:"ms,omitempty"`
}

// gestureScript is the top-level JSON structure of a gesture script.
type gestureScript struct {
	FrameMs int          `json:"frameMs,omitempty"`
	Steps   []scriptStep `json:"steps"`
}

// ScriptRunner replays a recorded stroke as motion events, one per Next call.
type ScriptRunner struct {
	steps  []scriptStep
	cursor int
	inj    *Injector
	queue  []*MotionEvent
}

// LoadGestureScript parses a JSON gesture script.
func LoadGestureScript(jsonData []byte) (*ScriptRunner, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press", "pointer_down", "move", "pointer_up", "release", "cancel", "drag", "wait":
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	inj := NewInjector()
	if script.FrameMs > 0 {
		inj.Interval = time.Duration(script.FrameMs) * time.Millisecond
	}
	return &ScriptRunner{steps: script.Steps, inj: inj}, nil
}

// Done reports whether every step has been replayed.
func (r *ScriptRunner) Done() bool {
	return r.cursor >= len(r.steps) && len(r.queue) == 0
}

// Next returns the next event, or nil when the script is done.
func (r *ScriptRunner) Next() *MotionEvent {
	for len(r.queue) == 0 {
		if r.cursor >= len(r.steps) {
			return nil
		}
		st := r.steps[r.cursor]
		r.cursor++
		r.queue = r.expand(st)
	}
	ev := r.queue[0]
	r.queue = r.queue[1:]
	return ev
}

// Events drains the remaining events.
func (r *ScriptRunner) Events() []*MotionEvent {
	var out []*MotionEvent
	for ev := r.Next(); ev != nil; ev = r.Next() {
		out = append(out, ev)
	}
	return out
}

func (r *ScriptRunner) expand(st scriptStep) []*MotionEvent {
	switch st.Action {
	case "press":
		return []*MotionEvent{r.inj.Press(st.ID, st.X, st.Y)}
	case "pointer_down":
		return []*MotionEvent{r.inj.PointerDown(st.ID, st.X, st.Y)}
	case "move":
		return []*MotionEvent{r.inj.Move(st.ID, st.X, st.Y)}
	case "pointer_up":
		return []*MotionEvent{r.inj.PointerUp(st.ID)}
	case "release":
		return []*MotionEvent{r.inj.Release(st.X, st.Y)}
	case "cancel":
		return []*MotionEvent{r.inj.Cancel()}
	case "drag":
		return r.inj.Drag(st.ID, Vec2{st.FromX, st.FromY}, Vec2{st.ToX, st.ToY}, st.Frames)
	case "wait":
		r.inj.Wait(time.Duration(st.Ms) * time.Millisecond)
	}
	return nil
}
