package main

import (
	"image/color"
	"regexp"
	"testing"
)

func TestLabelColor(t *testing.T) {
	if c := labelColor(0); c != (color.RGBA{A: 255}) {
		t.Fatalf("label 0 should be black, got %v", c)
	}
	if labelColor(3) != labelColor(3) {
		t.Fatal("colour must be stable")
	}
	if labelColor(1) == labelColor(2) {
		t.Fatal("neighbouring labels share a colour")
	}

	hex := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for _, label := range []int{0, 1, 17, 250} {
		if h := labelHex(label); !hex.MatchString(h) {
			t.Fatalf("labelHex(%d) = %q", label, h)
		}
	}
	if labelHex(0) != "#000000" {
		t.Fatalf("labelHex(0) = %q", labelHex(0))
	}
}
