package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetVec
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"vec":   WidgetVec,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Field is one row of a view struct with its rendering hints.
type Field struct {
	Name    string
	Section string // empty until a field opens a section
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
//
//	`inspect:"bar,max:1"`
//	`inspect:"vec,fmt:%.3f,name:Velocity"`
//	`inspect:"label,section:Motion"`
//	`inspect:"bar,labels:N|E|S|W"`
//	`inspect:"skip"`
//
// A section option applies to that field and every field after it until
// the next section.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")
	widget, ok := widgetNames[strings.TrimSpace(parts[0])]
	if !ok {
		widget = WidgetAuto
	}
	for _, part := range parts[1:] {
		if k, v, found := strings.Cut(strings.TrimSpace(part), ":"); found {
			options[k] = v
		}
	}
	return widget, options
}

// ExtractFields walks the exported fields of a view struct in order.
func ExtractFields(view interface{}) []Field {
	v := reflect.Indirect(reflect.ValueOf(view))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	fields := make([]Field, 0, v.NumField())
	section := ""

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if s, ok := options["section"]; ok {
			section = s
		}
		if widget == WidgetSkip {
			continue
		}

		fv := v.Field(i)
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}
		name := sf.Name
		if n, ok := options["name"]; ok {
			name = n
		}

		fields = append(fields, Field{
			Name:    name,
			Section: section,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}
	return fields
}

var vecType = reflect.TypeOf(r3.Vec{})

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	if v.Type() == vecType {
		return WidgetVec
	}
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Array, reflect.Slice:
		if isFloat(v.Type().Elem().Kind()) {
			return WidgetBar
		}
	}
	return WidgetLabel
}

// FormatValue formats a field value as a string. Vectors apply fmtStr to
// each component.
func FormatValue(value interface{}, fmtStr string) string {
	if v, ok := value.(r3.Vec); ok {
		if fmtStr == "" {
			fmtStr = "%.2f"
		}
		return fmt.Sprintf("("+fmtStr+", "+fmtStr+", "+fmtStr+")", v.X, v.Y, v.Z)
	}
	if fmtStr != "" {
		return fmt.Sprintf(fmtStr, value)
	}
	if f, ok := GetFloatValue(value); ok && isFloat(reflect.TypeOf(value).Kind()) {
		return fmt.Sprintf("%.2f", f)
	}
	return fmt.Sprintf("%v", value)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if m, err := strconv.ParseFloat(options["max"], 32); err == nil && m > 0 {
		return float32(m)
	}
	return 1.0
}

// GetFloatValue converts any numeric value to float32.
func GetFloatValue(value interface{}) (float32, bool) {
	if value == nil {
		return 0, false
	}
	return numeric(reflect.ValueOf(value))
}

// GetFloatSlice converts an array or slice of numbers to []float32.
func GetFloatSlice(value interface{}) ([]float32, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Array && v.Kind() != reflect.Slice {
		return nil, false
	}

	result := make([]float32, v.Len())
	for i := range result {
		f, ok := numeric(v.Index(i))
		if !ok {
			return nil, false
		}
		result[i] = f
	}
	return result, true
}

func numeric(v reflect.Value) (float32, bool) {
	switch {
	case isFloat(v.Kind()):
		return float32(v.Float()), true
	case v.CanInt():
		return float32(v.Int()), true
	case v.CanUint():
		return float32(v.Uint()), true
	}
	return 0, false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
