package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// GameUpdate reports one finished game to the dashboard.
type GameUpdate struct {
	WorkerID int
	GameID   string
	Turns    int
	Score    uint32
	MaxTile  uint32
	Lost     bool
}

func (u GameUpdate) String() string {
	end := "cut off"
	if u.Lost {
		end = "lost"
	}
	return fmt.Sprintf("Worker %d: %s %s after %d turns, score %d, max %d", u.WorkerID, u.GameID, end, u.Turns, u.Score, u.MaxTile)
}

type model struct {
	gamesPlayed int
	bestScore   uint32
	bestTile    uint32
	moves       int64
	startTime   time.Time
	recentGames []string
	updates     <-chan GameUpdate
	done        <-chan struct{}
}

func initialModel(updates <-chan GameUpdate, done <-chan struct{}) model {
	return model{
		startTime: time.Now(),
		updates:   updates,
		done:      done,
	}
}

type TickMsg time.Time

type workersDoneMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates, m.done), tickCmd())
}

func waitForUpdate(updates <-chan GameUpdate, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-updates:
			return u
		case <-done:
			return workersDoneMsg{}
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m.moves = totalMoves.Load()
		return m, tickCmd()
	case workersDoneMsg:
		return m, tea.Quit
	case GameUpdate:
		m.gamesPlayed++
		m.bestScore = max(m.bestScore, msg.Score)
		m.bestTile = max(m.bestTile, msg.MaxTile)
		m.recentGames = append([]string{msg.String()}, m.recentGames...)
		if len(m.recentGames) > 10 {
			m.recentGames = m.recentGames[:10]
		}
		return m, waitForUpdate(m.updates, m.done)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)
	gamesPerSec := float64(m.gamesPlayed) / duration.Seconds()
	movesPerSec := float64(m.moves) / duration.Seconds()
	if duration.Seconds() < 1 {
		gamesPerSec = 0
		movesPerSec = 0
	}

	var s strings.Builder
	fmt.Fprintf(&s, "Games Played:   %d\n", m.gamesPlayed)
	fmt.Fprintf(&s, "Games Skipped:  %d\n", skippedGames.Load())
	fmt.Fprintf(&s, "Total Moves:    %d\n", m.moves)
	fmt.Fprintf(&s, "Best Score:     %d\n", m.bestScore)
	fmt.Fprintf(&s, "Best Tile:      %d\n", m.bestTile)
	fmt.Fprintf(&s, "Duration:       %s\n", duration.Round(time.Second))
	fmt.Fprintf(&s, "Games/Sec:      %.2f\n", gamesPerSec)
	fmt.Fprintf(&s, "Moves/Sec:      %.2f\n\n", movesPerSec)

	s.WriteString("Recent Games:\n")
	for _, g := range m.recentGames {
		s.WriteString(g + "\n")
	}

	s.WriteString("\nPress q to quit.\n")
	return s.String()
}
