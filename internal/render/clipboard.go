package render

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Kissing-Discs/internal/game"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// copyTranscript puts the match transcript on the system clipboard.
func copyTranscript(g *game.Game) error {
	if err := writeClipboard(g.Transcript()); err != nil {
		return fmt.Errorf("copy transcript: %w", err)
	}
	return nil
}
