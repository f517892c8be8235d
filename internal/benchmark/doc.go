// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package benchmark measures the particle field headlessly.
//
// A Runner drives one simulation per tier for a fixed number of executed
// ticks on a synthetic clock, so every callback executes, and records the
// cost of each tick and the number of links drawn.
//
// # Key Types
//
//   - Runner: Executes a scenario for one or more tiers
//   - Scenario: How the pointer moves during a run (idle, hover, sweep)
//   - Result: Tick cost and link statistics of one tier
//   - Suite: The results of one invocation
//
// # Usage
//
//	runner := benchmark.NewRunner(benchmark.Options{
//		Frames:   300,
//		Viewport: field.NewViewport(1920, 1080, 1),
//	})
//	suite, err := runner.Run(ctx, quality.Tiers)
//	fmt.Print(suite.Table())
//
// Markdown renders the suite as a Markdown document; RenderMarkdown passes
// it through glamour for the terminal.
package benchmark
