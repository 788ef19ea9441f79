package feed

import (
	"github.com/katalvlaran/floodfield/flood"
	"github.com/katalvlaran/floodfield/raster"
)

// Message types.
const (
	TypeResult = "result"
	TypeError  = "error"
)

// Message is the wire form of a flood run.
type Message struct {
	Type         string        `json:"type"`
	Window       raster.Window `json:"window"`
	CellSize     float64       `json:"cellSize"`
	Rows         int           `json:"rows"`
	Cols         int           `json:"cols"`
	Flooded      []bool        `json:"flooded,omitempty"`
	WaterHeight  []float64     `json:"waterHeight,omitempty"`
	FloodedCells int           `json:"floodedCells"`
	Error        string        `json:"error,omitempty"`
}

// Params overrides run parameters; nil fields keep the server's values.
type Params struct {
	MaxFloodHeight *float64 `json:"maxFloodHeight,omitempty"`
	FloodThreshold *float64 `json:"floodThreshold,omitempty"`
	SmoothSigma    *float64 `json:"smoothSigma,omitempty"`
}

func (p Params) options() []flood.Option {
	var opts []flood.Option
	if p.MaxFloodHeight != nil {
		opts = append(opts, flood.WithMaxFloodHeight(*p.MaxFloodHeight))
	}
	if p.FloodThreshold != nil {
		opts = append(opts, flood.WithFloodThreshold(*p.FloodThreshold))
	}
	if p.SmoothSigma != nil {
		opts = append(opts, flood.WithSmoothing(*p.SmoothSigma))
	}

	return opts
}

func resultMessage(res *flood.Result) Message {
	return Message{
		Type:         TypeResult,
		Window:       res.Window,
		CellSize:     res.CellSize,
		Rows:         res.Rows,
		Cols:         res.Cols,
		Flooded:      res.Flooded,
		WaterHeight:  res.WaterHeight,
		FloodedCells: res.FloodedCount(),
	}
}

func errorMessage(err error) Message {
	return Message{Type: TypeError, Error: err.Error()}
}
