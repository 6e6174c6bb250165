package loop

import (
	"fmt"
	"io"

	"github.com/tomz197/asteroids-classic/internal/draw"
	"github.com/tomz197/asteroids-classic/internal/loop/config"
	"github.com/tomz197/asteroids-classic/internal/object"
	"github.com/tomz197/asteroids-classic/internal/physics"
)

// hudRows is the number of terminal rows above the playfield: the HUD line
// and the border's top bar.
const hudRows = 2

// Screen draws the game to a terminal. It implements Surface and Display.
type Screen struct {
	out      *draw.ChunkWriter
	canvas   *draw.Canvas
	sizeFunc draw.TermSizeFunc

	live   map[object.ID]*object.Participant
	legend string
	hint   string
	lives  int
	score  int
	err    error
}

// NewScreen creates a screen that renders the arena to w. sizeFunc reports
// the terminal size before every frame.
func NewScreen(w io.Writer, arena object.Arena, sizeFunc draw.TermSizeFunc) *Screen {
	if sizeFunc == nil {
		sizeFunc = draw.DefaultTermSizeFunc
	}
	return &Screen{
		out:      draw.NewChunkWriter(w),
		canvas:   draw.NewCanvas(1, 1, arena.Width, arena.Height),
		sizeFunc: sizeFunc,
		live:     make(map[object.ID]*object.Participant),
	}
}

func (s *Screen) AddParticipant(p *object.Participant)    { s.live[p.ID] = p }
func (s *Screen) RemoveParticipant(p *object.Participant) { delete(s.live, p.ID) }
func (s *Screen) SetLegend(text string)                   { s.legend = text }
func (s *Screen) SetLives(lives int)                      { s.lives = lives }
func (s *Screen) SetScore(score int)                      { s.score = score }

// SetHint sets the line shown under the legend.
func (s *Screen) SetHint(text string) {
	s.hint = text
}

// Err returns the first error hit while drawing. Once set, Refresh does nothing.
func (s *Screen) Err() error {
	return s.err
}

// Refresh draws one frame.
func (s *Screen) Refresh() {
	if s.err != nil {
		return
	}

	cols, rows, err := s.sizeFunc()
	if err != nil {
		s.err = fmt.Errorf("terminal size: %w", err)
		return
	}
	s.canvas.Fit(draw.FitSquare(cols, rows, hudRows, config.MaxTermWidth, config.MaxTermHeight))
	s.canvas.Clear()

	for _, p := range s.live {
		s.drawParticipant(p)
	}

	draw.ClearScreen(s.out)
	s.canvas.RenderBorder(s.out)
	if err := s.canvas.Render(s.out); err != nil {
		s.err = err
		return
	}
	s.drawHUD()

	if err := s.out.Flush(); err != nil {
		s.err = fmt.Errorf("write frame: %w", err)
	}
}

func (s *Screen) drawParticipant(p *object.Participant) {
	switch shape := p.Outline().(type) {
	case physics.Circle:
		s.canvas.DrawCircle(draw.Point{X: shape.X, Y: shape.Y}, shape.R)
	case physics.Polygon:
		pts := s.canvas.BorrowPoints(len(shape))
		for i, v := range shape {
			pts[i] = draw.Point{X: v.X, Y: v.Y}
		}
		s.canvas.DrawPolygon(pts)
	}
}

// drawHUD writes the score, lives, legend and hint over the playfield.
func (s *Screen) drawHUD() {
	left := s.canvas.OffsetCol() + 1
	width := s.canvas.TerminalWidth()
	hud := max(s.canvas.OffsetRow()-1, 1)
	middle := s.canvas.OffsetRow() + s.canvas.TerminalHeight()/2

	s.out.WriteAt(left, hud, fmt.Sprintf("Score: %d", s.score))
	lives := fmt.Sprintf("Lives: %d", s.lives)
	s.out.WriteAt(max(left, left+width-len(lives)), hud, lives)

	if s.legend != "" {
		s.out.WriteAt(centered(left, width, s.legend), middle, s.legend)
	}
	if s.hint != "" {
		s.out.WriteAt(centered(left, width, s.hint), middle+2, s.hint)
	}
}

func centered(left, width int, text string) int {
	return max(left, left+(width-len(text))/2)
}

// hintFor returns the prompt shown in a state.
func hintFor(st State) string {
	switch st {
	case StateSplash:
		return "Enter: start  arrows/WASD: fly  space: fire  t: teleport  q: quit"
	case StateGameOver:
		return "Enter: play again  q: quit"
	default:
		return ""
	}
}
