package main

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

var exportLabels = [][]int{
	{1, 0, 2, 2},
	{0, 3, 3, 0},
}

func TestExportPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.png")
	if err := exportPNG(path, exportLabels, "test frame 0"); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}

	// 4 columns scale to 128 pixels each.
	if w := img.Bounds().Dx(); w != 512 {
		t.Fatalf("width = %d, want 512", w)
	}
	if h := img.Bounds().Dy(); h <= 256 {
		t.Fatalf("height %d leaves no room for the legend", h)
	}

	wr, wg, wb, _ := labelColor(1).RGBA()
	r, g, b, _ := img.At(64, 64).RGBA()
	if r != wr || g != wg || b != wb {
		t.Fatalf("pixel of label 1 = (%d,%d,%d), want (%d,%d,%d)", r, g, b, wr, wg, wb)
	}
	r, g, b, _ = img.At(128+64, 64).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("background pixel should be black, got (%d,%d,%d)", r, g, b)
	}
}

func TestExportEmptyFrame(t *testing.T) {
	dir := t.TempDir()
	if err := exportPNG(filepath.Join(dir, "x.png"), nil, ""); !errors.Is(err, errNothingToExport) {
		t.Fatalf("expected errNothingToExport, got %v", err)
	}
	if err := exportLabelsTXT(filepath.Join(dir, "x.txt"), nil); !errors.Is(err, errNothingToExport) {
		t.Fatalf("expected errNothingToExport, got %v", err)
	}
}

func TestExportLabelsTXT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.txt")
	if err := exportLabelsTXT(path, exportLabels); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "1 0 2 2\n0 3 3 0\n"; string(data) != want {
		t.Fatalf("got %q, want %q", data, want)
	}
}

func TestPresentLabels(t *testing.T) {
	if got := presentLabels(exportLabels); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("got %v", got)
	}
}
