package dialect

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Verbatim, metni biçimlendirilmeden yazılacak değerleri işaretler.
type Verbatim interface {
	Verbatim() string
}

// FormatValue, bir Go değerini SQL literal token'ına çevirir.
//
//	nil              -> NULL
//	bool             -> TRUE / FALSE
//	tam sayılar      -> ondalık rakamlar
//	string           -> 'metin' (kaçış yapılmaz)
//	slice / array    -> (a, b, c), elemanlar özyinelemeli biçimlenir
//	map              -> fmt.Sprint ile olduğu gibi
//	Verbatim         -> Verbatim() metni
//
// Diğer tüm tipler ErrUnsupportedLiteralKind ile eşleşen *LiteralError döndürür.
func FormatValue(value any) (Token, error) {
	text, err := formatValue(value)
	if err != nil {
		return Token{}, err
	}
	return Literal(text), nil
}

func formatValue(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case Verbatim:
		return v.Verbatim(), nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case string:
		return "'" + v + "'", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "NULL", nil
		}
		return formatValue(rv.Elem().Interface())
	case reflect.Bool:
		return formatValue(rv.Bool())
	case reflect.String:
		return formatValue(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Slice, reflect.Array:
		items := make([]string, rv.Len())
		for i := range items {
			item, err := formatValue(rv.Index(i).Interface())
			if err != nil {
				return "", err
			}
			items[i] = item
		}
		return "(" + strings.Join(items, ", ") + ")", nil
	case reflect.Map:
		return fmt.Sprint(value), nil
	}

	return "", &LiteralError{Type: fmt.Sprintf("%T", value)}
}
