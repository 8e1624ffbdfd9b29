package common

import (
	"github.com/ternarybob/banner"
)

// PrintBanner displays the tool banner.
func PrintBanner(name string) {
	banner.PrintSimple(name, GetVersion())
}
