package render

import (
	"strings"
	"testing"

	"github.com/TheDeepDelve/cubeviz"
)

func TestNetPlainSolved(t *testing.T) {
	out := Net(cubeviz.InitialState(), Options{Plain: true})
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 9:\n%s", len(lines), out)
	}
	if got := strings.TrimSpace(lines[0]); got != "W W W" {
		t.Errorf("top line = %q", got)
	}
	if got := strings.TrimRight(lines[3], " "); got != "O O O  G G G  R R R  B B B" {
		t.Errorf("middle line = %q", got)
	}
	if got := strings.TrimSpace(lines[8]); got != "Y Y Y" {
		t.Errorf("bottom line = %q", got)
	}
}

func TestNetPlainAfterR(t *testing.T) {
	l, err := cubeviz.Apply(cubeviz.InitialState(), "R")
	if err != nil {
		t.Fatal(err)
	}
	out := Net(l, Options{Plain: true})
	lines := strings.Split(out, "\n")
	if got := strings.TrimSpace(lines[0]); got != "W W G" {
		t.Errorf("top line = %q, want W W G", got)
	}
}

func TestNetHighlight(t *testing.T) {
	out := Net(cubeviz.InitialState(), Options{Plain: true, Highlight: []string{"1,1,1"}})
	if n := strings.Count(out, "*"); n != 3 {
		t.Errorf("corner should mark 3 stickers, got %d:\n%s", n, out)
	}
}
