package gesture

import "testing"

func TestDispatch(t *testing.T) {
	tests := []struct {
		phase  Phase
		dir    Direction
		want   Action
		wantOK bool
	}{
		{Dragging, Right, Action{Kind: Move, Dir: Right}, true},
		{Dragging, Left, Action{Kind: Move, Dir: Left}, true},
		{Dragging, Up, Action{Kind: Move, Dir: Up}, true},
		{Dragging, Down, Action{Kind: Move, Dir: Down}, true},
		{Idle, Right, Action{Kind: NextTab}, true},
		{Idle, Left, Action{Kind: PrevTab}, true},
		{Idle, Up, Action{Kind: Scroll, Dir: Up}, true},
		{Idle, Down, Action{Kind: Scroll, Dir: Down}, true},
		{Pinching, Right, Action{Kind: NextTab}, true},
		{Pinching, Left, Action{Kind: PrevTab}, true},
		{Pinching, Up, Action{Kind: Scroll, Dir: Up}, true},
		{Pinching, Down, Action{Kind: Scroll, Dir: Down}, true},
		{Idle, NoDirection, Action{}, false},
		{Pinching, NoDirection, Action{}, false},
		{Dragging, NoDirection, Action{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.phase.String()+"/"+tt.dir.String(), func(t *testing.T) {
			got, ok := Dispatch(tt.phase, tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Dispatch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAction_Label(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{Action{Kind: Click}, "CLICK"},
		{Action{Kind: DoubleClick}, "DOUBLE CLICK"},
		{Action{Kind: DragStart}, "DRAG START"},
		{Action{Kind: Drop}, "DROP"},
		{Action{Kind: Move, Dir: Left}, "MOVE LEFT"},
		{Action{Kind: Move, Dir: Down}, "MOVE DOWN"},
		{Action{Kind: Scroll, Dir: Up}, "SCROLL UP"},
		{Action{Kind: NextTab}, "NEXT TAB"},
		{Action{Kind: PrevTab}, "PREVIOUS TAB"},
		{Action{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.action.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAction_String(t *testing.T) {
	if got := (Action{Kind: Scroll, Dir: Down}).String(); got != "scroll down" {
		t.Errorf("String() = %q", got)
	}
	if got := (Action{Kind: DoubleClick}).String(); got != "double-click" {
		t.Errorf("String() = %q", got)
	}
	if got := ActionKind(99).String(); got != "unknown" {
		t.Errorf("String() = %q", got)
	}
}
