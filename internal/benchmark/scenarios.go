// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package benchmark

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/jeranaias/constellation/internal/field"
)

// ErrUnknownScenario is returned by GetScenario.
var ErrUnknownScenario = errors.New("unknown benchmark scenario")

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// PointerPath places the pointer for frame n. ok false means the pointer
// is outside the field.
type PointerPath func(n int, vp field.Viewport) (x, y float64, ok bool)

// Scenario is a named pointer behaviour.
type Scenario struct {
	Name        string
	Description string
	Pointer     PointerPath
}

// GetStandardScenarios returns the built-in scenarios.
func GetStandardScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "idle",
			Description: "No pointer; particles rest at home",
			Pointer: func(int, field.Viewport) (float64, float64, bool) {
				return 0, 0, false
			},
		},
		{
			Name:        "hover",
			Description: "Pointer fixed at the centre of the field",
			Pointer: func(_ int, vp field.Viewport) (float64, float64, bool) {
				return vp.Width / 2, vp.Height / 2, true
			},
		},
		{
			Name:        "sweep",
			Description: "Pointer traces a Lissajous curve across the field",
			Pointer: func(n int, vp field.Viewport) (float64, float64, bool) {
				t := float64(n) / 60
				x := vp.Width / 2 * (1 + 0.9*math.Sin(3*t))
				y := vp.Height / 2 * (1 + 0.9*math.Sin(2*t+math.Pi/4))
				return x, y, true
			},
		},
	}
}

// DefaultScenario is used when none is named.
const DefaultScenario = "sweep"

// GetScenario looks a scenario up by name (case-insensitive).
func GetScenario(name string) (Scenario, error) {
	if name == "" {
		name = DefaultScenario
	}
	for _, s := range GetStandardScenarios() {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// ScenarioNames lists the built-in scenario names.
func ScenarioNames() []string {
	scenarios := GetStandardScenarios()
	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	return names
}
