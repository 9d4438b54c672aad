// Package render draws a lattice as a colored cube net for the terminal.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TheDeepDelve/cubeviz"
)

// stickerStyles maps sticker colors to terminal styles.
var stickerStyles = map[cubeviz.Color]lipgloss.Style{
	cubeviz.White:  lipgloss.NewStyle().Background(lipgloss.Color("15")),
	cubeviz.Yellow: lipgloss.NewStyle().Background(lipgloss.Color("11")),
	cubeviz.Green:  lipgloss.NewStyle().Background(lipgloss.Color("2")),
	cubeviz.Blue:   lipgloss.NewStyle().Background(lipgloss.Color("4")),
	cubeviz.Red:    lipgloss.NewStyle().Background(lipgloss.Color("1")),
	cubeviz.Orange: lipgloss.NewStyle().Background(lipgloss.Color("208")),
	cubeviz.Hidden: lipgloss.NewStyle().Background(lipgloss.Color("0")),
}

// faceWidth is the rendered width of one face: three stickers, two cells each.
const faceWidth = 6

var (
	markStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Options control net rendering.
type Options struct {
	// Highlight marks stickers of these cubie IDs, typically the rotating group.
	Highlight []string
	// Plain renders color letters instead of colored blocks.
	Plain bool
	// Labels prints the face letter above each face.
	Labels bool
}

// Net renders the lattice as an unfolded net:
//
//	    U
//	L   F   R   B
//	    D
func Net(l cubeviz.Lattice, opts Options) string {
	highlight := make(map[cubeviz.Coord]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		if c, ok := l.Find(id); ok {
			highlight[c.Position.Index()] = true
		}
	}

	facelets := l.Facelets()
	face := func(f cubeviz.Face) string {
		return renderFace(f, facelets.Face(f), highlight, opts)
	}
	blank := strings.Repeat(" ", faceWidth)
	blankFace := strings.TrimSuffix(strings.Repeat(blank+"\n", faceHeight(opts)), "\n")

	top := lipgloss.JoinHorizontal(lipgloss.Top, blankFace, " ", face(cubeviz.FaceU))
	middle := lipgloss.JoinHorizontal(lipgloss.Top,
		face(cubeviz.FaceL), " ", face(cubeviz.FaceF), " ", face(cubeviz.FaceR), " ", face(cubeviz.FaceB))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, blankFace, " ", face(cubeviz.FaceD))

	return lipgloss.JoinVertical(lipgloss.Left, top, middle, bottom)
}

func faceHeight(opts Options) int {
	if opts.Labels {
		return 4
	}
	return 3
}

func renderFace(f cubeviz.Face, stickers [9]cubeviz.Color, highlight map[cubeviz.Coord]bool, opts Options) string {
	rows := make([]string, 0, 4)
	if opts.Labels {
		rows = append(rows, labelStyle.Render(padRight(string(f), faceWidth)))
	}
	for r := 0; r < 3; r++ {
		var sb strings.Builder
		for c := 0; c < 3; c++ {
			i := r*3 + c
			sb.WriteString(sticker(stickers[i], highlight[cubeviz.StickerCoord(f, i)], opts.Plain))
		}
		rows = append(rows, sb.String())
	}
	return strings.Join(rows, "\n")
}

func sticker(c cubeviz.Color, marked, plain bool) string {
	if plain {
		if marked {
			return strings.ToLower(c.String()) + "*"
		}
		return c.String() + " "
	}
	cell := "  "
	if marked {
		cell = "<>"
	}
	return markStyle.Inherit(stickerStyles[c]).Render(cell)
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
