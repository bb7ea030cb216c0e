package options

import (
	"fmt"
	"strings"

	"github.com/vk/sqlrake/internal/catalog"
)

// Values maps option destinations to their typed parsed values.
type Values map[string]any

func (v Values) Bool(dest string) bool {
	b, _ := v[dest].(bool)
	return b
}

func (v Values) String(dest string) string {
	s, _ := v[dest].(string)
	return s
}

func (v Values) Int(dest string) int {
	i, _ := v[dest].(int)
	return i
}

func (v Values) Float(dest string) float64 {
	f, _ := v[dest].(float64)
	return f
}

// Parse walks argv against the catalogue and fills destination values.
// Both --opt=value and --opt value forms are accepted; switches take no
// value. Catalogue defaults seed the map before any token is consumed.
func Parse(argv []string, cat *catalog.Catalog) (Values, error) {
	vals := make(Values)
	for _, opt := range cat.Options() {
		if dv := opt.DefaultValue(); dv != nil {
			vals[opt.Dest] = dv
		}
	}

	for i := 0; i < len(argv); i++ {
		token := argv[i]
		if !strings.HasPrefix(token, "-") || token == "-" {
			return nil, fmt.Errorf("unrecognized argument '%s'", token)
		}

		name, inline, hasInline := strings.Cut(token, "=")
		opt, ok := cat.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("no such option: '%s'", name)
		}

		switch {
		case !opt.TakesValue():
			if hasInline {
				return nil, fmt.Errorf("option '%s' does not take a value", name)
			}
			vals[opt.Dest] = true
		case hasInline:
			value, err := opt.Convert(inline)
			if err != nil {
				return nil, err
			}
			vals[opt.Dest] = value
		default:
			if i+1 == len(argv) {
				return nil, fmt.Errorf("option '%s' requires an argument", name)
			}
			i++
			value, err := opt.Convert(argv[i])
			if err != nil {
				return nil, err
			}
			vals[opt.Dest] = value
		}
	}

	return vals, nil
}
