package remote

import (
	"encoding/json"

	"labelterm/internal/model"
)

// Project is the shape of a project and the label state of its first frame.
type Project struct {
	ID          string `json:"project_id"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	NumFrames   int    `json:"numFrames"`
	NumChannels int    `json:"numChannels"`
	NumFeatures int    `json:"numFeatures"`

	Payload model.Payload `json:"-"`
}

func (p *Project) UnmarshalJSON(data []byte) error {
	type shape Project
	var s shape
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if err := json.Unmarshal(data, &s.Payload); err != nil {
		return err
	}
	*p = Project(s)
	return nil
}

// Model builds the annotation model for the project.
func (p *Project) Model() *model.Model {
	m := model.New(p.Width, p.Height, p.NumFrames, p.NumFeatures, p.NumChannels)
	m.ApplyPayload(&p.Payload)
	return m
}
