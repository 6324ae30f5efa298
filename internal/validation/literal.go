package validation

import (
	"reflect"
	"strings"
)

// UnsafeText, değer (ya da bir liste değerinin herhangi bir elemanı) tek tırnak
// içeren bir metin ise o metni döndürür. Literal metinler kaçış yapılmadan
// gömüldüğü için bu metinler sorgunun yapısını değiştirebilir.
func UnsafeText(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if s, ok := value.(string); ok {
		return s, strings.Contains(s, "'")
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return UnsafeText(rv.String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", false
		}
		return UnsafeText(rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if s, bad := UnsafeText(rv.Index(i).Interface()); bad {
				return s, true
			}
		}
	}
	return "", false
}
