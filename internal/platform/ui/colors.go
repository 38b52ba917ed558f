// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// "Marquee" palette: cinema billboard lights

var (
	// MarqueeGold - marquee bulbs, headers
	MarqueeGold = pterm.NewRGB(255, 196, 0)

	// CurtainRed - curtain, errors
	CurtainRed = pterm.NewRGB(196, 30, 58)

	// ScreenWhite - screen, main text
	ScreenWhite = pterm.NewRGB(236, 236, 236)

	// SeatGray - seats, secondary text
	SeatGray = pterm.NewRGB(110, 110, 110)

	// NeonTeal - neon sign, accents and success
	NeonTeal = pterm.NewRGB(0, 200, 190)

	// TicketAmber - tickets, warnings
	TicketAmber = pterm.NewRGB(255, 150, 40)
)

var (
	StylePrimary   = MarqueeGold.ToRGBStyle()
	StyleSuccess   = NeonTeal.ToRGBStyle()
	StyleWarning   = TicketAmber.ToRGBStyle()
	StyleError     = CurtainRed.ToRGBStyle()
	StyleSecondary = SeatGray.ToRGBStyle()
	StyleText      = ScreenWhite.ToRGBStyle()
	StyleLink      = pterm.NewStyle(pterm.FgBlue)
	StyleIndex     = pterm.NewStyle(pterm.FgYellow)
)
