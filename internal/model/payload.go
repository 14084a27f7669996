package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Payload is the label state returned by the label service after an edit,
// undo, redo or display change. Either part may be absent when the service
// reports it unchanged.
type Payload struct {
	Tracks map[string]Track `json:"-"`
	Images *Images          `json:"-"`
}

// Images carries the re-rendered frame and its label array.
type Images struct {
	Raw       string  `json:"raw,omitempty"`
	Segmented string  `json:"segmented,omitempty"`
	Labels    [][]int `json:"seg_arr,omitempty"`
}

// Track is the per-label cell information kept by the service.
type Track struct {
	Frames    []int `json:"frames"`
	Parent    *int  `json:"parent,omitempty"`
	Daughters []int `json:"daughters,omitempty"`
	Capped    bool  `json:"capped,omitempty"`
}

type payloadWire struct {
	Tracks json.RawMessage `json:"tracks"`
	Images json.RawMessage `json:"imgs"`
}

// UnmarshalJSON accepts the service's convention of sending false for
// unchanged parts.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var wire payloadWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*p = Payload{}
	if present(wire.Tracks) {
		if err := json.Unmarshal(wire.Tracks, &p.Tracks); err != nil {
			return err
		}
	}
	if present(wire.Images) {
		p.Images = &Images{}
		if err := json.Unmarshal(wire.Images, p.Images); err != nil {
			return err
		}
	}
	return nil
}

// Empty reports whether the payload carries no change.
func (p *Payload) Empty() bool {
	return p == nil || (p.Tracks == nil && p.Images == nil)
}

func present(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("false")) && !bytes.Equal(raw, []byte("null"))
}

// LabelState is the last label data received from the service.
type LabelState struct {
	Labels    [][]int
	Raw       string
	Segmented string
	Tracks    map[string]Track
}

// Apply merges a payload into the state.
func (s *LabelState) Apply(p *Payload) {
	if p.Empty() {
		return
	}
	if p.Images != nil {
		if p.Images.Raw != "" {
			s.Raw = p.Images.Raw
		}
		if p.Images.Segmented != "" {
			s.Segmented = p.Images.Segmented
		}
		if p.Images.Labels != nil {
			s.Labels = p.Images.Labels
		}
	}
	if p.Tracks != nil {
		s.Tracks = p.Tracks
	}
}

// MaxLabel returns the largest label in use in the shown frame or the
// track table.
func (s *LabelState) MaxLabel() int {
	highest := 0
	for _, row := range s.Labels {
		for _, label := range row {
			if label > highest {
				highest = label
			}
		}
	}
	for key := range s.Tracks {
		if label, err := strconv.Atoi(key); err == nil && label > highest {
			highest = label
		}
	}
	return highest
}

// LabelAt returns the label at an image position, or 0 outside the array.
func (s *LabelState) LabelAt(x, y int) int {
	if y < 0 || y >= len(s.Labels) {
		return 0
	}
	row := s.Labels[y]
	if x < 0 || x >= len(row) {
		return 0
	}
	return row[x]
}
