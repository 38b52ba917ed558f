// internal/platform/ui/ascii.go
package ui

// BannerText is rendered with pterm BigText
const BannerText = "MOVIELINKS"

// BannerPlain is the banner for terminals without color
const BannerPlain = `
+------------------------------------------+
|   MOVIELINKS                             |
|   Movie & subtitle link generator        |
+------------------------------------------+
`

// WelcomeMessage opens every session
const WelcomeMessage = "Welcome to the Movie Link Generator!"
