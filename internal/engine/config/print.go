package config

import (
	"fmt"
	"io"
	"reflect"
	"time"
)

const maskedValue = "********"

// Print writes v as an indented tree. Fields tagged secret:"true" are masked
// unless they are empty.
func (c *Compositor) Print(w io.Writer, v any) {
	c.printConfig(w, v, "  ")
}

func (c *Compositor) printConfig(w io.Writer, v any, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		fieldName := fieldType.Name
		if tag, ok := fieldType.Tag.Lookup("mapstructure"); ok {
			if tag != "" {
				fieldName = tag
			}
		}

		if field.Kind() == reflect.Ptr {
			if field.IsNil() {
				fmt.Fprintf(w, "%s%s: <nil>\n", prefix, fieldName)
				continue
			}
			field = field.Elem()
		}

		if fieldType.Tag.Get("secret") == "true" && !field.IsZero() {
			fmt.Fprintf(w, "%s%s: %s\n", prefix, fieldName, maskedValue)
			continue
		}

		switch {
		case field.Type() == reflect.TypeOf(time.Duration(0)):
			duration := field.Interface().(time.Duration)
			fmt.Fprintf(w, "%s%s: %s\n", prefix, fieldName, duration.String())
		case field.Kind() == reflect.Struct:
			fmt.Fprintf(w, "%s%s:\n", prefix, fieldName)
			c.printConfig(w, field.Addr().Interface(), prefix+"  ")
		case field.Kind() == reflect.Slice, field.Kind() == reflect.Map:
			fmt.Fprintf(w, "%s%s: %v\n", prefix, fieldName, field.Interface())
		case field.Kind() == reflect.String:
			fmt.Fprintf(w, "%s%s: \"%s\"\n", prefix, fieldName, field.Interface())
		default:
			fmt.Fprintf(w, "%s%s: %v\n", prefix, fieldName, field.Interface())
		}
	}
}
