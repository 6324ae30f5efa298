// Package validation, strict modda kullanılan alan, tablo ve operatör denetimlerini
// ve literal olarak gömülecek metinler için tırnak denetimini içerir.
//
// Builder varsayılan olarak hiçbir tanımlayıcıyı doğrulamaz; bu paketteki
// fonksiyonlar yalnızca WithStrict(true) ile devreye girer.
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
package validation

import (
	"regexp"
	"strings"
)

// identifierRegex, tek parçalı ya da "schema.name" biçimli tanımlayıcıları eşler.
var identifierRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)?$`)

// aliasRegex, "expr AS alias" ya da "expr alias" biçimini eşler.
var aliasRegex = regexp.MustCompile(`(?i)^(\S+)\s+(?:as\s+)?([a-zA-Z_][a-zA-Z0-9_]*)$`)

const maxIdentifierLength = 128

// ValidateIdentifier, verilen adın geçerli bir SQL tanımlayıcısı olup olmadığını kontrol eder.
func ValidateIdentifier(id string) error {
	switch {
	case id == "":
		return &IdentifierError{Identifier: id, Reason: "identifier cannot be empty"}
	case len(id) > maxIdentifierLength:
		return &IdentifierError{Identifier: id, Reason: "identifier exceeds maximum length of 128 characters"}
	case !identifierRegex.MatchString(id):
		return &IdentifierError{
			Identifier: id,
			Reason:     "identifier contains invalid characters; only letters, numbers, underscores, and one dot are allowed",
		}
	}
	return nil
}

// ValidateTable, FROM'a verilen tablo adını doğrular ("table" veya "schema.table").
func ValidateTable(table string) error {
	return ValidateIdentifier(table)
}

// ValidateField, SELECT listesindeki bir alanı doğrular.
// Desteklenen biçimler: "*", "column", "t.column", "column AS alias", "column alias".
func ValidateField(field string) (name, alias string, err error) {
	field = strings.TrimSpace(field)
	if field == "*" {
		return field, "", nil
	}

	if m := aliasRegex.FindStringSubmatch(field); m != nil {
		if err := ValidateIdentifier(m[1]); err != nil {
			return "", "", err
		}
		if strings.EqualFold(m[2], "as") {
			return "", "", &IdentifierError{Identifier: field, Reason: "missing alias after AS"}
		}
		return m[1], m[2], nil
	}

	if err := ValidateIdentifier(field); err != nil {
		return "", "", err
	}
	return field, "", nil
}

// IdentifierError, tanımlayıcı doğrulama hatasını temsil eder.
type IdentifierError struct {
	Identifier string
	Reason     string
}

// Error, error arayüzünü uygular.
func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return "chocosql: invalid identifier: " + e.Reason
	}
	return "chocosql: invalid identifier '" + e.Identifier + "': " + e.Reason
}
