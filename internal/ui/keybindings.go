package ui

import tea "github.com/charmbracelet/bubbletea"

// --- Key Helpers ---

func isKey(msg tea.KeyMsg, keys ...string) bool {
	for _, k := range keys {
		if msg.String() == k {
			return true
		}
	}
	return false
}

// Plain letters go to the search box, so quitting needs a control key.
func isQuit(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+c")
}

func isBack(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEsc {
		return true
	}
	return isKey(msg, "esc", "ctrl+[")
}

func isUp(msg tea.KeyMsg) bool {
	return isKey(msg, "up", "ctrl+p")
}

func isDown(msg tea.KeyMsg) bool {
	return isKey(msg, "down", "ctrl+n")
}

func isLeft(msg tea.KeyMsg) bool {
	return isKey(msg, "left")
}

func isRight(msg tea.KeyMsg) bool {
	return isKey(msg, "right")
}

func isEnter(msg tea.KeyMsg) bool {
	return isKey(msg, "enter")
}

func isBackspace(msg tea.KeyMsg) bool {
	return isKey(msg, "backspace", "ctrl+h")
}

func isDelete(msg tea.KeyMsg) bool {
	return isKey(msg, "delete")
}

func isFocusSwitch(msg tea.KeyMsg) bool {
	return isKey(msg, "tab", "shift+tab")
}

func isClearAll(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+x")
}

func isToggleReadOnly(msg tea.KeyMsg) bool {
	return isKey(msg, "ctrl+r")
}

func isConfirm(msg tea.KeyMsg) bool {
	return isKey(msg, "y", "Y")
}

// typedText returns the runes a key press inserts into the search box.
func typedText(msg tea.KeyMsg) (string, bool) {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return "", false
		}
		return string(msg.Runes), true
	case tea.KeySpace:
		return " ", true
	}
	return "", false
}
