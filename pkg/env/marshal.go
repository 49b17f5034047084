package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// MarshalEnv renders the env-tagged fields of a struct, or a pointer to one,
// as .env lines in field order. Empty values are left out so the defaults
// declared on the config structs still apply when the file is loaded.
func MarshalEnv(c any) (string, error) {
	v := reflect.Indirect(reflect.ValueOf(c))
	if v.Kind() != reflect.Struct {
		return "", fmt.Errorf("env: expected a struct, got %s", v.Kind())
	}
	t := v.Type()

	var b strings.Builder
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		// "KEY,required,notEmpty" -> KEY
		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" || key == "-" {
			continue
		}

		val := v.Field(i)
		if isEmpty(val) {
			continue
		}
		s, err := formatValue(val, field.Tag.Get("envSeparator"))
		if err != nil {
			return "", fmt.Errorf("env: %s: %w", key, err)
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(quote(s))
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}

func formatValue(v reflect.Value, sep string) (string, error) {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String(), nil
	}

	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32), nil
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Slice:
		// caarlos0/env splits on "," unless envSeparator says otherwise
		if sep == "" {
			sep = ","
		}
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			s, err := formatValue(v.Index(i), "")
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, sep), nil
	case reflect.Ptr:
		return formatValue(v.Elem(), sep)
	}
	return "", fmt.Errorf("unsupported kind %s", v.Kind())
}

// quote wraps values godotenv would misread unquoted: spaces, comments,
// quotes, escapes and variable references.
func quote(s string) string {
	if !strings.ContainsAny(s, " \t#\"'\\\n$") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, `$`, `\$`)
	return `"` + r.Replace(s) + `"`
}
