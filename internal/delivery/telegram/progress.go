package telegram

import (
	"fmt"
	"strings"
)

const progressBarLength = 10

// buildProgressBar renders percent as a bar; dark mode uses a darker track.
func buildProgressBar(percent, length int, dark bool) string {
	filledCell, emptyCell := "🟩", "⬜"
	if dark {
		emptyCell = "⬛"
	}

	if percent < 0 {
		percent = 0
	}
	filled := percent * length / 100
	if filled > length {
		filled = length
	}

	return fmt.Sprintf("%s%s %d%%",
		strings.Repeat(filledCell, filled),
		strings.Repeat(emptyCell, length-filled),
		percent,
	)
}
