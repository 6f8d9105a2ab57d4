// Package icon renders the symbols of the interface in the variant chosen by icons.variant.
package icon

import (
	"github.com/spf13/viper"
	"github.com/tvremote/tvremote/key"
)

type variant int

const (
	plain variant = iota
	emoji
	nerd
	kaomoji
	squares
	variantCount
)

var variantNames = [variantCount]string{"plain", "emoji", "nerd", "kaomoji", "squares"}

type glyphs [variantCount]string

// AvailableVariants lists the values icons.variant accepts.
func AvailableVariants() []string {
	return variantNames[:]
}

func current() (variant, bool) {
	name := viper.GetString(key.IconsVariant)
	for v, n := range variantNames {
		if n == name {
			return variant(v), true
		}
	}
	return 0, false
}

// Get returns i in the configured variant, or "" when the variant is unknown.
func Get(i Icon) string {
	v, ok := current()
	if !ok || int(i) < 0 || int(i) >= len(icons) {
		return ""
	}
	return icons[i][v]
}
