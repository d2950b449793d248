package display

import (
	"image"
	"testing"
)

func TestNull_ExitAfter(t *testing.T) {
	n := &Null{ExitAfter: 2}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	_ = n.Show(img)
	if n.PollExit(0) {
		t.Fatalf("exit requested too early")
	}
	_ = n.Show(img)
	if !n.PollExit(0) {
		t.Fatalf("expected exit after 2 frames")
	}
	if n.Shown() != 2 || n.Last() != img {
		t.Fatalf("unexpected bookkeeping")
	}
}

func TestNull_RequestExit(t *testing.T) {
	n := &Null{}
	if n.PollExit(0) {
		t.Fatalf("fresh sink should not exit")
	}
	n.RequestExit()
	if !n.PollExit(0) {
		t.Fatalf("expected exit")
	}
	if n.PollExit(0) {
		t.Fatalf("a request should be reported once")
	}
}
