package chocosql

import (
	"io"

	"github.com/biyonik/go-choco-sql/dialect"
)

// -----------------------------------------------------------------------------
//  DB ve ondan türeyen Builder'ların davranışı With* fonksiyonları ile
//  yapılandırılır. Her Option, NewDB / New çağrısında sırayla uygulanır.
//
//  -- @author   Ahmet ALTUN
//  -- @github   github.com/biyonik
//  -- @linkedin linkedin.com/in/biyonik
//  -- @email    ahmet.altun60@gmail.com
// -----------------------------------------------------------------------------

// Option, bir *DB örneği üzerinde çalışan yapılandırma fonksiyonudur.
type Option func(*DB)

// WithGrammar, derlemede kullanılacak grameri değiştirir. Varsayılan Postgres'tir.
//
// Örnek:
//
//	db := chocosql.NewDB(sqlDB, chocosql.WithGrammar(dialect.SQLite()))
func WithGrammar(g dialect.Grammar) Option {
	return func(d *DB) {
		d.grammar = g
	}
}

// WithDebug, açıkken çalıştırılan her sorgu Logger'a yazılır.
func WithDebug(enabled bool) Option {
	return func(d *DB) {
		d.debug = enabled
	}
}

// WithLogger, sorgu logger'ını değiştirir.
//
// Örnek:
//
//	db := chocosql.NewDB(sqlDB,
//	    chocosql.WithDebug(true),
//	    chocosql.WithLogger(chocosql.SlogLogger{}),
//	)
func WithLogger(logger Logger) Option {
	return func(d *DB) {
		d.logger = logger
	}
}

// WithSchema, nitelenmemiş tablolar için gramerin varsayılan şemasını ezer.
func WithSchema(schema string) Option {
	return func(d *DB) {
		d.schema = schema
	}
}

// WithOutput, PrintQuery ile yazdırılan sorguların hedefidir. Varsayılan os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(d *DB) {
		d.out = w
	}
}

// WithOutputMode, yeni Builder'ların varsayılan sonuç biçimini ayarlar.
func WithOutputMode(mode OutputMode) Option {
	return func(d *DB) {
		d.mode = mode
	}
}

// WithStrict, alan/tablo/operatör doğrulamasını açar ve tırnak içeren metin
// literallerini hata olarak reddeder. Kapalıyken bu literaller yalnızca loglanır.
func WithStrict(enabled bool) Option {
	return func(d *DB) {
		d.strict = enabled
	}
}

// applyOptions, nil olmayan her Option'ı sırayla uygular.
func applyOptions(d *DB, opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
}
