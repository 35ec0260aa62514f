package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/brensch/snake/game"
)

// Each board cell is drawn two columns wide so squares look square.
const cellWidth = 2

// boardTop is the screen row of the first board row (row 0 is the title).
const boardTop = 1

const playLabel = "[ PLAY ]"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	wallStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	bodyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	headStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	appleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	buttonStyle = lipgloss.NewStyle().Reverse(true).Bold(true)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

var glyphs = map[game.Cell]string{
	game.Empty:     "  ",
	game.Wall:      "▒▒",
	game.SnakeBody: "██",
	game.Apple:     "()",
}

var styles = map[game.Cell]lipgloss.Style{
	game.Empty:     lipgloss.NewStyle(),
	game.Wall:      wallStyle,
	game.SnakeBody: bodyStyle,
	game.Apple:     appleStyle,
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// playButton is where the Play button sits on screen for a board of the
// given size: the middle board row, centered and aligned to a cell edge.
func playButton(size int) rect {
	w := len(playLabel)
	x := (size*cellWidth - w) / 2
	x -= x % cellWidth
	return rect{x: x, y: boardTop + size/2, w: w, h: 1}
}

func (m Model) View() string {
	v := m.snake.Field()
	size := v.Size()
	head := m.snake.Head()

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("SNAKE"))
	sb.WriteByte('\n')

	btn := playButton(size)
	overlay := m.phase != playing
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if overlay && btn.y == boardTop+y && x*cellWidth >= btn.x && x*cellWidth < btn.x+btn.w {
				if x*cellWidth == btn.x {
					sb.WriteString(buttonStyle.Render(playLabel))
				}
				continue
			}
			c := v.CellAt(x, y)
			if c == game.SnakeBody && head == (game.Point{X: x, Y: y}) {
				sb.WriteString(headStyle.Render("▓▓"))
				continue
			}
			sb.WriteString(styles[c].Render(glyphs[c]))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(statusStyle.Render(m.status()))
	return sb.String()
}

func (m Model) status() string {
	switch m.phase {
	case notStarted:
		return "enter or click PLAY to start, arrows/wasd to steer, q to quit"
	case gameOver:
		if m.snake.Won() {
			return fmt.Sprintf("board full, you win! length %d", m.snake.Len())
		}
		return fmt.Sprintf("game over: length %d, apples %d (best %d)", m.snake.Len(), m.snake.Apples(), m.bestLength)
	default:
		return fmt.Sprintf("length %d  apples %d  game %d", m.snake.Len(), m.snake.Apples(), m.games)
	}
}
