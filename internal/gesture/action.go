package gesture

import "strings"

// ActionKind identifies a discrete action produced by the recognizer.
type ActionKind int

const (
	Click ActionKind = iota + 1
	DoubleClick
	DragStart
	Drop
	Move
	Scroll
	NextTab
	PrevTab
)

var kindNames = map[ActionKind]string{
	Click:       "click",
	DoubleClick: "double-click",
	DragStart:   "drag-start",
	Drop:        "drop",
	Move:        "move",
	Scroll:      "scroll",
	NextTab:     "next-tab",
	PrevTab:     "prev-tab",
}

func (k ActionKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Action is one output event. Dir is set only for Move and Scroll.
type Action struct {
	Kind ActionKind
	Dir  Direction
}

// Label returns the on-screen feedback text for the action.
func (a Action) Label() string {
	switch a.Kind {
	case Click:
		return "CLICK"
	case DoubleClick:
		return "DOUBLE CLICK"
	case DragStart:
		return "DRAG START"
	case Drop:
		return "DROP"
	case Move:
		return "MOVE " + strings.ToUpper(a.Dir.String())
	case Scroll:
		return "SCROLL " + strings.ToUpper(a.Dir.String())
	case NextTab:
		return "NEXT TAB"
	case PrevTab:
		return "PREVIOUS TAB"
	}
	return ""
}

func (a Action) String() string {
	if a.Dir == NoDirection {
		return a.Kind.String()
	}
	return a.Kind.String() + " " + a.Dir.String()
}
