package catalog

import (
	"fmt"
	"strconv"
)

// Convert coerces a raw string value to the option's declared type.
func (o *Option) Convert(raw string) (any, error) {
	switch o.Kind {
	case KindSwitch:
		return true, nil
	case KindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("option %s: %q is not an integer", o.Names[0], raw)
		}
		return v, nil
	case KindFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("option %s: %q is not a number", o.Names[0], raw)
		}
		return v, nil
	default:
		return raw, nil
	}
}

// DefaultValue returns the option's declared default as a plain Go value,
// or nil when the option has none.
func (o *Option) DefaultValue() any {
	if o.Default == nil {
		return nil
	}
	switch o.Kind {
	case KindSwitch:
		return o.Default.True()
	case KindInt:
		i, _ := o.Default.AsBigFloat().Int64()
		return int(i)
	case KindFloat:
		f, _ := o.Default.AsBigFloat().Float64()
		return f
	default:
		return o.Default.AsString()
	}
}
