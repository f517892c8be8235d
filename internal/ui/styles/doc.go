// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the HUD styling for the constellation terminal host.

Colors use Lip Gloss AdaptiveColor for automatic light/dark detection. The
accent palette follows the particle field: Sky for particles, Link for the
link lines, and Emerald/Amber/Rose for the running, paused and disposed
states.

# Color profiles

ProfileFor maps the ui.color_mode setting to a termenv profile:

	auto      - ask the terminal
	truecolor - 24-bit
	ansi256   - 256 colors
	ansi      - 16 colors
	ascii     - no colors

# Usage

	theme := styles.NewTheme(styles.ProfileFor(cfg.UI.ColorMode))
	bar := theme.HUD.Render(theme.Brand.Render("constellation"))

Status messages for the command line carry ASCII shape indicators
([OK], [X], [!], [i]) next to the color:

	fmt.Println(styles.RenderSuccess("config written"))
*/
package styles
