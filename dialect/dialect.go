// Package dialect, choco sorgu oluşturucusunun token modelini, değer biçimlendiricisini
// ve veritabanına özgü gramerleri (Postgres, MySQL, SQLite) içerir.
//
// Builder, her clause için bir token listesi tutar; Grammar ise bu listeleri sabit
// sırayla (WITH, SELECT, FROM, WHERE) birleştirip son SQL metnini üretir.
//
// Yazar: Ahmet ALTUN
// Github: github.com/biyonik
// LinkedIn: linkedin.com/in/biyonik
// Email: ahmet.altun60@gmail.com
package dialect

import (
	"strings"
)

// ----------------------------------------------------------------------------
// QueryBuilder Interface (import döngüsünü kırmak için)
// ----------------------------------------------------------------------------

// QueryBuilder, Grammar implementasyonlarının ihtiyaç duyduğu arayüzü tanımlar.
// Bu arayüz, ana paket ile dialect paketi arasındaki import döngüsünü kırmak için kullanılır.
type QueryBuilder interface {
	// GetClause, verilen clause'un token listesini döndürür.
	GetClause(c Clause) []Token

	// Depth, açık alt sorgu çerçevesi sayısını döndürür.
	Depth() int
}

// ----------------------------------------------------------------------------
// Grammar Interface
// ----------------------------------------------------------------------------

// Grammar, clause buffer'larını veritabanına özgü SQL metnine çevirir.
type Grammar interface {
	// Name, gramerin kimliğini döndürür (örn. "postgres", "mysql", "sqlite").
	Name() string

	// DefaultSchema, FROM tablosu nitelenirken kullanılan varsayılan şemadır.
	// Boş ise tablo adı olduğu gibi yazılır.
	DefaultSchema() string

	// QualifyTable, tablo adını şema ile niteler. Nokta içeren adlar olduğu gibi kalır.
	QualifyTable(table, schema string) string

	// FormatValue, Go değerini SQL literal token'ına çevirir.
	FormatValue(value any) (Token, error)

	// CompileSelect, clause buffer'larını tek bir SELECT ifadesine derler.
	CompileSelect(b QueryBuilder) (string, error)
}

// ----------------------------------------------------------------------------
// Base Grammar (ortak fonksiyonlar)
// ----------------------------------------------------------------------------

// BaseGrammar, tüm gramer implementasyonları için ortak fonksiyonellik sağlar.
type BaseGrammar struct {
	name   string
	schema string
}

// Name, gramerin adını döndürür.
func (g *BaseGrammar) Name() string {
	return g.name
}

// DefaultSchema, gramerin varsayılan şemasını döndürür.
func (g *BaseGrammar) DefaultSchema() string {
	return g.schema
}

// QualifyTable, "schema.table" biçimini üretir.
// Tablo zaten nokta içeriyorsa ya da şema boşsa tablo adı değişmeden döner.
func (g *BaseGrammar) QualifyTable(table, schema string) string {
	if strings.Contains(table, ".") {
		return table
	}
	if schema == "" {
		schema = g.schema
	}
	if schema == "" {
		return table
	}
	return schema + "." + table
}

// FormatValue, ortak literal kurallarını uygular.
func (g *BaseGrammar) FormatValue(value any) (Token, error) {
	return FormatValue(value)
}

// CompileSelect, clause'ları EmitOrder sırasıyla birleştirir ve sonuna ";" ekler.
// SELECT hiç ayarlanmadıysa "SELECT *" yazılır; boş clause'lar atlanır.
func (g *BaseGrammar) CompileSelect(b QueryBuilder) (string, error) {
	if b.Depth() > 0 {
		return "", ErrOpenGroup
	}

	parts := make([]string, 0, len(EmitOrder))
	for _, c := range EmitOrder {
		tokens := b.GetClause(c)
		if len(tokens) == 0 {
			if c == ClauseSelect {
				parts = append(parts, "SELECT *")
			}
			continue
		}
		parts = append(parts, Render(tokens))
	}

	return strings.Join(parts, " ") + ";", nil
}

// ByName, sürücü ya da lehçe adına göre grameri döndürür.
// Bilinmeyen adlar için ok false olur.
func ByName(name string) (g Grammar, ok bool) {
	switch name {
	case "postgres", "postgresql", "pgx", "pq":
		return Postgres(), true
	case "mysql", "mariadb":
		return MySQL(), true
	case "sqlite", "sqlite3":
		return SQLite(), true
	}
	return nil, false
}

// ----------------------------------------------------------------------------
// Sentinel Errors (dialect-specific)
// ----------------------------------------------------------------------------

// Dialect implementasyonları için ortak hatalar.
// Ana paket ile import döngüsünü önlemek için burada tanımlanmıştır.
var (
	ErrUnsupportedLiteralKind = &DialectError{Message: "unsupported literal kind"}
	ErrOpenGroup              = &DialectError{Message: "query compiled while a subquery group is still open"}
)

// DialectError, dialect'e özgü hataları temsil eder.
type DialectError struct {
	Message string
}

// Error, hatayı string olarak döndürür.
func (e *DialectError) Error() string {
	return "dialect: " + e.Message
}

// LiteralError, biçimlendirilemeyen değerin Go tipini taşır.
type LiteralError struct {
	Type string
}

func (e *LiteralError) Error() string {
	return "dialect: unsupported literal kind " + e.Type
}

// Is, errors.Is(err, ErrUnsupportedLiteralKind) kontrolünü sağlar.
func (e *LiteralError) Is(target error) bool {
	return target == ErrUnsupportedLiteralKind
}
