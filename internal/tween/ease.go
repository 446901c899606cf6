package tween

import "github.com/tanema/gween/ease"

// Curve names accepted in Options.Ease.
var eases = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"power2.out":   ease.OutQuad,
	"power3.out":   ease.OutCubic,
	"power2.inOut": ease.InOutQuad,
	"cubic.inOut":  ease.InOutCubic,
}

// Lookup returns the named curve, or ease.Linear when the name is unknown.
func Lookup(name string) ease.TweenFunc {
	if fn, ok := eases[name]; ok {
		return fn
	}
	return ease.Linear
}
