// Package inspector extracts live-editable knobs from tagged configuration
// structs so the parameter panel can be generated instead of hand-written.
package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering knobs.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetSlider
	WidgetLabel
	WidgetSkip
)

// Knob is one editable float64 field reachable from the root struct.
type Knob struct {
	Section string // yaml name of the enclosing section
	Name    string // yaml name of the field
	Index   []int  // field index path from the root
	Widget  Widget
	Min     float64
	Max     float64
	Format  string
}

// Label returns "section.name".
func (k Knob) Label() string {
	if k.Section == "" {
		return k.Name
	}
	return k.Section + "." + k.Name
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"[widget,]option:value..."`
// Examples:
//
//	`inspect:"max:400"`
//	`inspect:"min:1,max:600"`
//	`inspect:"label,fmt:%.4f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")
	widget := WidgetAuto
	switch strings.TrimSpace(parts[0]) {
	case "slider":
		widget = WidgetSlider
	case "label":
		widget = WidgetLabel
	case "skip":
		widget = WidgetSkip
	}
	if widget != WidgetAuto {
		parts = parts[1:]
	}

	for _, part := range parts {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractKnobs walks root (a struct or pointer to struct) one level deep:
// each exported struct field is a section and each float64 field inside it
// is a knob. Fields tagged skip are ignored at either level.
func ExtractKnobs(root interface{}) []Knob {
	t := reflect.TypeOf(root)
	if t == nil {
		return nil
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	var knobs []Knob
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || sf.Type.Kind() != reflect.Struct {
			continue
		}
		if w, _ := ParseTag(sf.Tag.Get("inspect")); w == WidgetSkip {
			continue
		}
		section := yamlName(sf)
		if section == "-" {
			continue
		}

		for j := 0; j < sf.Type.NumField(); j++ {
			ff := sf.Type.Field(j)
			if !ff.IsExported() || ff.Type.Kind() != reflect.Float64 {
				continue
			}
			widget, options := ParseTag(ff.Tag.Get("inspect"))
			if widget == WidgetSkip {
				continue
			}
			if widget == WidgetAuto {
				widget = WidgetSlider
			}
			knobs = append(knobs, Knob{
				Section: section,
				Name:    yamlName(ff),
				Index:   []int{i, j},
				Widget:  widget,
				Min:     GetMin(options),
				Max:     GetMax(options),
				Format:  options["fmt"],
			})
		}
	}
	return knobs
}

// Get reads the knob's current value from root, which must be a pointer to
// the struct the knob was extracted from.
func (k Knob) Get(root interface{}) float64 {
	return reflect.ValueOf(root).Elem().FieldByIndex(k.Index).Float()
}

// Set writes v into root, clamped to the knob's range.
func (k Knob) Set(root interface{}, v float64) {
	if v < k.Min {
		v = k.Min
	}
	if v > k.Max {
		v = k.Max
	}
	reflect.ValueOf(root).Elem().FieldByIndex(k.Index).SetFloat(v)
}

// FormatValue formats a knob value, picking precision from the knob range
// when no fmt option was given.
func (k Knob) FormatValue(v float64) string {
	if k.Format != "" {
		return fmt.Sprintf(k.Format, v)
	}
	switch span := k.Max - k.Min; {
	case span <= 0.05:
		return fmt.Sprintf("%.4f", v)
	case span <= 5:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float64 {
	if maxStr, ok := options["max"]; ok {
		if max, err := strconv.ParseFloat(maxStr, 64); err == nil {
			return max
		}
	}
	return 1.0
}

// GetMin returns the min option as a float, defaulting to 0.
func GetMin(options map[string]string) float64 {
	if minStr, ok := options["min"]; ok {
		if min, err := strconv.ParseFloat(minStr, 64); err == nil {
			return min
		}
	}
	return 0
}

func yamlName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("yaml"), ",")
	if name == "" {
		return strings.ToLower(sf.Name)
	}
	return name
}
