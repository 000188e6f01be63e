package gesture

// Dispatch maps the frame's phase and swipe direction to an action.
// While dragging every swipe moves the dragged item; otherwise horizontal
// swipes switch tabs and vertical swipes scroll.
func Dispatch(phase Phase, dir Direction) (Action, bool) {
	if dir == NoDirection {
		return Action{}, false
	}

	if phase == Dragging {
		return Action{Kind: Move, Dir: dir}, true
	}

	switch dir {
	case Right:
		return Action{Kind: NextTab}, true
	case Left:
		return Action{Kind: PrevTab}, true
	default:
		return Action{Kind: Scroll, Dir: dir}, true
	}
}
