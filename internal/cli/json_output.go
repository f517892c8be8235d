// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Machine-readable output for --json.
//
// Every command that supports --json writes exactly one JSONResponse to
// stdout. Human-readable notes go to stderr in that mode.

package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jeranaias/constellation/internal/benchmark"
	"github.com/jeranaias/constellation/internal/detect"
	"github.com/jeranaias/constellation/internal/quality"
	"github.com/jeranaias/constellation/internal/storage"
)

// JSONResponse is the envelope for all JSON output.
type JSONResponse struct {
	// Success indicates whether the command completed successfully
	Success bool `json:"success"`

	// Data contains the command-specific response data
	Data interface{} `json:"data"`

	// Error contains the error message if Success is false, null otherwise
	Error *string `json:"error"`

	// Timestamp is the RFC3339 time the response was generated
	Timestamp string `json:"timestamp"`

	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a new successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a new error JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	errStr := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &errStr,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print outputs the JSON response to stdout.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// String returns the JSON response as a string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to marshal response: %s","timestamp":"%s"}`,
			err.Error(), time.Now().UTC().Format(time.RFC3339))
	}
	return string(data)
}

// =============================================================================
// COMMAND-SPECIFIC DATA STRUCTURES
// =============================================================================

// VersionData represents the data returned by the version command.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

// ConfigPathData is returned by "config path".
type ConfigPathData struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

// ConfigValueData is returned by "config get".
type ConfigValueData struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// BenchData is returned by the bench command.
type BenchData struct {
	StartedAt    string              `json:"started_at"`
	DurationMs   int64               `json:"duration_ms"`
	Scenario     string              `json:"scenario"`
	Surface      string              `json:"surface"`
	Width        float64             `json:"width"`
	Height       float64             `json:"height"`
	Scale        float64             `json:"scale"`
	Frames       int                 `json:"frames"`
	Seed         uint64              `json:"seed"`
	Capabilities detect.Capabilities `json:"capabilities"`
	Results      []BenchResultData   `json:"results"`
	Batch        string              `json:"batch,omitempty"`
	RunIDs       []string            `json:"run_ids,omitempty"`
}

// BenchResultData is one tier of a bench run.
type BenchResultData struct {
	Tier         string  `json:"tier"`
	Particles    int     `json:"particles"`
	Frames       int     `json:"frames"`
	MeanTickUs   float64 `json:"mean_tick_us"`
	P95TickUs    float64 `json:"p95_tick_us"`
	MinTickUs    float64 `json:"min_tick_us"`
	MaxTickUs    float64 `json:"max_tick_us"`
	MeanLinks    float64 `json:"mean_links"`
	MaxLinks     int     `json:"max_links"`
	BudgetPct    float64 `json:"budget_pct"`
	RasterWidth  int     `json:"raster_width,omitempty"`
	RasterHeight int     `json:"raster_height,omitempty"`
}

// RunData is one stored benchmark run.
type RunData struct {
	ID         string  `json:"id"`
	Batch      string  `json:"batch"`
	CreatedAt  string  `json:"created_at"`
	Tier       string  `json:"tier"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scale      float64 `json:"scale"`
	Frames     int     `json:"frames"`
	Particles  int     `json:"particles"`
	MeanTickUs float64 `json:"mean_tick_us"`
	P95TickUs  float64 `json:"p95_tick_us"`
	MaxTickUs  float64 `json:"max_tick_us"`
	MeanLinks  float64 `json:"mean_links"`
	Surface    string  `json:"surface"`
	Cores      int     `json:"cores"`
	MemoryGB   float64 `json:"memory_gb"`
	Version    string  `json:"version"`
}

// TiersData is returned by the tiers command.
type TiersData struct {
	Capabilities  detect.Capabilities `json:"capabilities"`
	Columns       int                 `json:"columns"`
	Rows          int                 `json:"rows"`
	Width         float64             `json:"width"`
	Height        float64             `json:"height"`
	Selected      string              `json:"selected"`
	Override      string              `json:"override,omitempty"`
	Effective     string              `json:"effective"`
	Particles     int                 `json:"particles"`
	ReducedMotion bool                `json:"reduced_motion"`
	Tiers         []TierData          `json:"tiers"`
}

// TierData is one row of the tier table.
type TierData struct {
	Name            string  `json:"name"`
	ParticleDivisor float64 `json:"particle_divisor"`
	MinParticles    int     `json:"min_particles"`
	MaxParticles    int     `json:"max_particles"`
	LinkDistance    float64 `json:"link_distance"`
	RepulseRadius   float64 `json:"repulse_radius"`
	FPS             int     `json:"fps"`
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

func newBenchData(s *benchmark.Suite, runs []storage.Run) BenchData {
	data := BenchData{
		StartedAt:    s.StartedAt.UTC().Format(time.RFC3339),
		DurationMs:   s.Duration.Milliseconds(),
		Scenario:     s.Scenario,
		Surface:      s.Surface,
		Width:        s.Viewport.Width,
		Height:       s.Viewport.Height,
		Scale:        s.Viewport.PixelRatioX,
		Frames:       s.Frames,
		Seed:         s.Seed,
		Capabilities: s.Capabilities,
		Results:      make([]BenchResultData, len(s.Results)),
	}
	for i, r := range s.Results {
		data.Results[i] = BenchResultData{
			Tier:         r.Tier.String(),
			Particles:    r.Particles,
			Frames:       r.Frames,
			MeanTickUs:   micros(r.MeanTick),
			P95TickUs:    micros(r.P95Tick),
			MinTickUs:    micros(r.MinTick),
			MaxTickUs:    micros(r.MaxTick),
			MeanLinks:    r.MeanLinks,
			MaxLinks:     r.MaxLinks,
			BudgetPct:    r.Budget(),
			RasterWidth:  r.RasterWidth,
			RasterHeight: r.RasterHeight,
		}
	}
	if len(runs) > 0 {
		data.Batch = runs[0].Batch
		for _, run := range runs {
			data.RunIDs = append(data.RunIDs, run.ID)
		}
	}
	return data
}

func newRunData(r *storage.Run) RunData {
	return RunData{
		ID:         r.ID,
		Batch:      r.Batch,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
		Tier:       r.Tier,
		Width:      r.Width,
		Height:     r.Height,
		Scale:      r.Scale,
		Frames:     r.Frames,
		Particles:  r.Particles,
		MeanTickUs: micros(r.MeanTick),
		P95TickUs:  micros(r.P95Tick),
		MaxTickUs:  micros(r.MaxTick),
		MeanLinks:  r.MeanLinks,
		Surface:    r.Surface,
		Cores:      r.Cores,
		MemoryGB:   r.MemoryGB,
		Version:    r.Version,
	}
}

func newTiersData(r tierReport) TiersData {
	data := TiersData{
		Capabilities:  r.Caps,
		Columns:       r.Cols,
		Rows:          r.Rows,
		Width:         r.Width,
		Height:        r.Height,
		Selected:      r.Selected.String(),
		Effective:     r.Effective.String(),
		Particles:     r.Particles,
		ReducedMotion: r.FromReduced,
	}
	if r.Override != nil {
		data.Override = r.Override.String()
	}
	for _, t := range quality.Tiers {
		c := quality.ConfigFor(t)
		data.Tiers = append(data.Tiers, TierData{
			Name:            t.String(),
			ParticleDivisor: c.ParticleDivisor,
			MinParticles:    c.MinParticles,
			MaxParticles:    c.MaxParticles,
			LinkDistance:    c.LinkDistance,
			RepulseRadius:   c.RepulseRadius,
			FPS:             c.FPS,
		})
	}
	return data
}
