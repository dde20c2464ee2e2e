// Package textblock composes multi-line text blocks into larger layouts.
//
// A Block is a rectangular piece of rendered text. Blocks are combined by
// stacking them vertically, placing them side by side, padding groups of
// them to a common height and arranging rows of them into a bordered table.
package textblock

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/reflow/wordwrap"
)

// Block is rendered text, possibly spanning several lines.
type Block string

func (b Block) String() string { return string(b) }

// Height returns the number of lines in b.
func Height(b Block) int { return lipgloss.Height(string(b)) }

// Width returns the display width of the widest line in b.
func Width(b Block) int { return lipgloss.Width(string(b)) }

// LipglossComposer builds blocks with lipgloss. Text passed to MakeBlock is
// word-wrapped to CellWidth columns; a CellWidth of 0 leaves it untouched.
type LipglossComposer struct {
	CellWidth int
}

// NewLipglossComposer returns a composer wrapping text at cellWidth.
func NewLipglossComposer(cellWidth int) *LipglossComposer {
	if cellWidth < 0 {
		cellWidth = 0
	}
	return &LipglossComposer{CellWidth: cellWidth}
}

func (c *LipglossComposer) MakeBlock(text string) Block {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if c.CellWidth > 0 && lipgloss.Width(text) > c.CellWidth {
		text = wordwrap.String(text, c.CellWidth)
	}
	return Block(text)
}

func (c *LipglossComposer) StackVertical(top, bottom Block) Block {
	return Block(lipgloss.JoinVertical(lipgloss.Left, string(top), string(bottom)))
}

func (c *LipglossComposer) ConcatHorizontal(left, right Block) Block {
	return Block(lipgloss.JoinHorizontal(lipgloss.Top, string(left), string(right)))
}

// NormalizeHeights pads every block at the bottom to the height of the
// tallest one. The input slice is not modified.
func (c *LipglossComposer) NormalizeHeights(blocks []Block) []Block {
	maxHeight := 0
	for _, b := range blocks {
		if h := Height(b); h > maxHeight {
			maxHeight = h
		}
	}

	out := make([]Block, len(blocks))
	for i, b := range blocks {
		out[i] = Block(lipgloss.PlaceVertical(maxHeight, lipgloss.Top, string(b)))
	}
	return out
}

// BorderedTable draws rows of blocks inside a single-line border with a
// separator between every row.
func (c *LipglossComposer) BorderedTable(rows [][]Block) Block {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderRow(true)

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, b := range row {
			cells[i] = string(b)
		}
		t.Row(cells...)
	}
	return Block(t.String())
}
