package tui

import (
	"bytes"
	"log/slog"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/brensch/snake/game"
	"github.com/brensch/snake/logging"
	"github.com/brensch/snake/rules"
)

func newTestModel(t *testing.T, size, framesPerTick int, buf *bytes.Buffer) Model {
	t.Helper()
	s, err := rules.NewSnake(size, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewSnake: %v", err)
	}
	opts := Options{FrameDelay: time.Millisecond, FramesPerTick: framesPerTick}
	if buf != nil {
		opts.Logger = logging.New(buf, logging.Options{Level: slog.LevelDebug})
	}
	return New(s, opts)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T want Model", next)
	}
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_StartsOnOverlay(t *testing.T) {
	m := newTestModel(t, 10, 1, nil)
	if m.phase != notStarted {
		t.Fatalf("phase=%v want=not_started", m.phase)
	}
	if m.Init() == nil {
		t.Fatalf("Init returned nil cmd")
	}

	// Frames and steering do nothing before the round starts.
	m, _ = send(t, m, key("left"))
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, frameMsg(time.Now()))
	}
	if m.snake.Ticks() != 0 || m.snake.Direction() != game.Up {
		t.Fatalf("snake changed before start: ticks=%d dir=%v", m.snake.Ticks(), m.snake.Direction())
	}

	view := m.View()
	if !strings.Contains(view, "SNAKE") || !strings.Contains(view, playLabel) {
		t.Fatalf("overlay view missing title or button:\n%s", view)
	}
}

func TestModel_KeysSteer(t *testing.T) {
	m := newTestModel(t, 10, 1, nil)
	m, _ = send(t, m, key("enter"))
	if m.phase != playing {
		t.Fatalf("phase=%v want=playing", m.phase)
	}

	m, _ = send(t, m, key("left"))
	if m.snake.Direction() != game.Left {
		t.Fatalf("dir=%v want=left", m.snake.Direction())
	}
	m, _ = send(t, m, key("d"))
	if m.snake.Direction() != game.Right {
		t.Fatalf("dir=%v want=right", m.snake.Direction())
	}
	// Reversal of the last applied move (up) is ignored.
	m, _ = send(t, m, key("s"))
	if m.snake.Direction() != game.Right {
		t.Fatalf("dir=%v want=right", m.snake.Direction())
	}
}

func TestModel_FramePacing(t *testing.T) {
	m := newTestModel(t, 10, 10, nil)
	m, _ = send(t, m, key("enter"))

	for i := 0; i < 9; i++ {
		var cmd tea.Cmd
		m, cmd = send(t, m, frameMsg(time.Now()))
		if cmd == nil {
			t.Fatalf("frame %d: no follow-up frame scheduled", i)
		}
	}
	if m.snake.Ticks() != 0 {
		t.Fatalf("ticks=%d after 9 frames want=0", m.snake.Ticks())
	}
	m, _ = send(t, m, frameMsg(time.Now()))
	if m.snake.Ticks() != 1 {
		t.Fatalf("ticks=%d after 10 frames want=1", m.snake.Ticks())
	}
	for i := 0; i < 10; i++ {
		m, _ = send(t, m, frameMsg(time.Now()))
	}
	if m.snake.Ticks() != 2 {
		t.Fatalf("ticks=%d after 20 frames want=2", m.snake.Ticks())
	}
}

func runUntilOver(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 100 && m.phase == playing; i++ {
		m, _ = send(t, m, frameMsg(time.Now()))
	}
	if m.phase != gameOver {
		t.Fatalf("phase=%v want=game_over\n%s", m.phase, m.View())
	}
	return m
}

func TestModel_GameOverAndClickRestart(t *testing.T) {
	var buf bytes.Buffer
	m := newTestModel(t, 5, 1, &buf)
	m, _ = send(t, m, key(" "))
	m = runUntilOver(t, m)

	view := m.View()
	if !strings.Contains(view, playLabel) || !strings.Contains(view, "game over") {
		t.Fatalf("game over view:\n%s", view)
	}

	btn := playButton(5)
	click := tea.MouseMsg{X: btn.x + btn.w, Y: btn.y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = send(t, m, click)
	if m.phase != gameOver {
		t.Fatalf("click outside button restarted the game")
	}

	click.X = btn.x + 1
	m, _ = send(t, m, click)
	if m.phase != playing {
		t.Fatalf("phase=%v after click want=playing", m.phase)
	}
	if m.snake.Len() != 2 || m.snake.Ticks() != 0 || m.snake.Over() {
		t.Fatalf("snake not reset: len=%d ticks=%d over=%v", m.snake.Len(), m.snake.Ticks(), m.snake.Over())
	}
	if m.Games() != 2 {
		t.Fatalf("games=%d want=2", m.Games())
	}
	if m.BestLength() < 2 {
		t.Fatalf("best length=%d want>=2", m.BestLength())
	}

	logs := buf.String()
	if strings.Count(logs, `"msg":"game started"`) != 2 || !strings.Contains(logs, `"msg":"game over"`) {
		t.Fatalf("logs:\n%s", logs)
	}
	if !strings.Contains(logs, `"game_id":"`) {
		t.Fatalf("game_id missing from logs:\n%s", logs)
	}
}

func TestModel_RejectedTurnIsLogged(t *testing.T) {
	var buf bytes.Buffer
	m := newTestModel(t, 10, 1, &buf)
	m, _ = send(t, m, key("enter"))
	m, _ = send(t, m, key("down"))
	if !strings.Contains(buf.String(), `"msg":"direction rejected"`) {
		t.Fatalf("logs:\n%s", buf.String())
	}
	if m.snake.Direction() != game.Up {
		t.Fatalf("dir=%v want=up", m.snake.Direction())
	}
}

func TestModel_Quit(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		m := newTestModel(t, 10, 1, nil)
		_, cmd := send(t, m, key(k))
		if cmd == nil {
			t.Fatalf("%s: nil cmd", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("%s: cmd did not quit", k)
		}
	}
}

func TestView_BoardShape(t *testing.T) {
	m := newTestModel(t, 7, 1, nil)
	m, _ = send(t, m, key("enter"))

	lines := strings.Split(m.View(), "\n")
	// title + 7 board rows + status
	if len(lines) != 9 {
		t.Fatalf("lines=%d want=9\n%s", len(lines), m.View())
	}
	if strings.Contains(m.View(), playLabel) {
		t.Fatalf("button drawn while playing")
	}
	if !strings.Contains(lines[boardTop+3], "▓▓") {
		t.Fatalf("head missing from row 3: %q", lines[boardTop+3])
	}
	if !strings.Contains(lines[len(lines)-1], "length 2") {
		t.Fatalf("status=%q", lines[len(lines)-1])
	}
}

func TestPlayButton_FitsSmallestBoard(t *testing.T) {
	for size := rules.MinSize; size < 30; size++ {
		b := playButton(size)
		if b.x < 0 || b.x+b.w > size*cellWidth {
			t.Fatalf("size=%d button %+v outside board width %d", size, b, size*cellWidth)
		}
		if b.x%cellWidth != 0 {
			t.Fatalf("size=%d button x=%d not cell aligned", size, b.x)
		}
	}
}
