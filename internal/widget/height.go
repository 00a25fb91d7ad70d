package widget

// Height bounds reported to the host, in pixels.
const (
	MinHeight = 64
	MaxHeight = 420
)

const (
	inputRowHeight  = 48
	chipRowHeight   = 32
	chipsPerRow     = 4
	optionRowHeight = 36
	visibleOptions  = 8
	dropdownPadding = 8
	emptyListHeight = 40
)

// EstimateHeight sizes the widget for the given number of selected chips and
// dropdown state, clamped to [MinHeight, MaxHeight].
func EstimateHeight(selected int, open bool, options int) int {
	h := inputRowHeight
	if selected > 0 {
		rows := (selected + chipsPerRow - 1) / chipsPerRow
		h += rows * chipRowHeight
	}
	if open {
		switch {
		case options <= 0:
			h += emptyListHeight
		case options > visibleOptions:
			h += visibleOptions*optionRowHeight + dropdownPadding
		default:
			h += options*optionRowHeight + dropdownPadding
		}
	}
	if h < MinHeight {
		return MinHeight
	}
	if h > MaxHeight {
		return MaxHeight
	}
	return h
}
