package validation

import "strings"

// allowedOperators, strict modda WHERE koşullarında kabul edilen operatörlerdir.
var allowedOperators = map[string]bool{
	"=": true, "!=": true, "<>": true,
	"<": true, ">": true, "<=": true, ">=": true,

	"LIKE": true, "NOT LIKE": true,
	"ILIKE": true, "NOT ILIKE": true,

	"IS": true, "IS NOT": true,
	"IS DISTINCT FROM": true, "IS NOT DISTINCT FROM": true,

	"IN": true, "NOT IN": true,
}

// NormalizeOperator, operatörü büyük harfe çevirir, fazla boşlukları atar ve
// izin verilen listede değilse *OperatorError döndürür.
func NormalizeOperator(op string) (string, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))
	if !allowedOperators[normalized] {
		return "", &OperatorError{Operator: op, Reason: "operator not in allowed list"}
	}
	return normalized, nil
}

// ValidateOperator, NormalizeOperator'ın yalnızca hata döndüren halidir.
func ValidateOperator(op string) error {
	_, err := NormalizeOperator(op)
	return err
}

// IsSetOperator, operatör bir değer listesi bekliyor mu (IN / NOT IN)?
func IsSetOperator(op string) bool {
	normalized := strings.ToUpper(strings.Join(strings.Fields(op), " "))
	return normalized == "IN" || normalized == "NOT IN"
}

// OperatorError, operatör doğrulama hatasını temsil eder.
type OperatorError struct {
	Operator string
	Reason   string
}

func (e *OperatorError) Error() string {
	return "chocosql: invalid operator '" + e.Operator + "': " + e.Reason
}
