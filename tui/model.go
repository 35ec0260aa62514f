// Package tui is the terminal front end for the snake game.
//
// A Model wraps one rules.Snake. Frames arrive every FrameDelay; the snake
// moves once every FramesPerTick frames. Keys steer, and a Play button
// (Enter, Space, r or a left click) starts or restarts a round.
package tui

import (
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/brensch/snake/game"
	"github.com/brensch/snake/logging"
	"github.com/brensch/snake/rules"
)

type phase uint8

const (
	notStarted phase = iota
	playing
	gameOver
)

func (p phase) String() string {
	switch p {
	case notStarted:
		return "not_started"
	case playing:
		return "playing"
	default:
		return "game_over"
	}
}

type Options struct {
	FrameDelay    time.Duration
	FramesPerTick int
	Logger        *slog.Logger
}

type frameMsg time.Time

type Model struct {
	snake *rules.Snake
	opts  Options
	log   *slog.Logger

	phase  phase
	cycle  int
	gameID string

	games      int
	bestLength int
}

func New(snake *rules.Snake, opts Options) Model {
	if opts.FrameDelay <= 0 {
		opts.FrameDelay = 32 * time.Millisecond
	}
	if opts.FramesPerTick <= 0 {
		opts.FramesPerTick = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.New(io.Discard, logging.Options{})
	}
	return Model{
		snake: snake,
		opts:  opts,
		log:   logger,
		phase: notStarted,
	}
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return frameCmd(m.opts.FrameDelay)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "w", "k":
			m.steer(game.Up)
		case "down", "s", "j":
			m.steer(game.Down)
		case "left", "a", "h":
			m.steer(game.Left)
		case "right", "d", "l":
			m.steer(game.Right)
		case "enter", " ", "r":
			if m.phase != playing {
				m.start()
			}
		}
		return m, nil

	case tea.MouseMsg:
		if m.phase != playing &&
			msg.Action == tea.MouseActionPress &&
			msg.Button == tea.MouseButtonLeft &&
			playButton(m.snake.Field().Size()).contains(msg.X, msg.Y) {
			m.start()
		}
		return m, nil

	case frameMsg:
		if m.phase == playing {
			if m.cycle == m.opts.FramesPerTick-1 {
				if m.snake.Tick() == rules.GameOver {
					m.finish()
				}
			}
			m.cycle = (m.cycle + 1) % m.opts.FramesPerTick
		}
		return m, frameCmd(m.opts.FrameDelay)
	}
	return m, nil
}

func (m *Model) steer(d game.Direction) {
	if m.phase != playing {
		return
	}
	if !m.snake.Steer(d) {
		m.log.Debug("direction rejected",
			"game_id", m.gameID,
			"direction", d.String(),
			"last_direction", m.snake.LastDirection().String())
	}
}

func (m *Model) start() {
	if m.phase == gameOver {
		m.snake.Restart()
	}
	m.phase = playing
	m.cycle = 0
	m.games++
	m.gameID = uuid.NewString()
	m.log.Info("game started",
		"game_id", m.gameID,
		"size", m.snake.Field().Size(),
		"frames_per_tick", m.opts.FramesPerTick)
}

func (m *Model) finish() {
	m.phase = gameOver
	m.bestLength = max(m.bestLength, m.snake.Len())
	m.log.Info("game over",
		"game_id", m.gameID,
		"length", m.snake.Len(),
		"apples", m.snake.Apples(),
		"ticks", m.snake.Ticks(),
		"won", m.snake.Won())
}

// Games is the number of rounds started.
func (m Model) Games() int { return m.games }

// BestLength is the longest snake among finished rounds.
func (m Model) BestLength() int { return m.bestLength }
