package dialect

/*
 * ----------------------------------------------------------------------------
 * POSTGRESQL GRAMMAR
 * ----------------------------------------------------------------------------
 *
 * Choco'nun referans grameridir. FROM tablosu nokta içermiyorsa varsayılan
 * "public" şeması ile nitelenir:
 *
 *   From("locations")         -> FROM public.locations
 *   From("sales.orders")      -> FROM sales.orders
 *   FromSchema("geo") + From  -> FROM geo.locations
 *
 * Değerler sorguya literal olarak gömülür; parametre bağlama yapılmaz.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// PostgresGrammar, Grammar arayüzünü PostgreSQL için implemente eder.
type PostgresGrammar struct {
	BaseGrammar
}

// Postgres, "public" varsayılan şemalı yeni bir PostgreSQL grameri oluşturur.
func Postgres() *PostgresGrammar {
	return &PostgresGrammar{
		BaseGrammar: BaseGrammar{
			name:   "postgres",
			schema: "public",
		},
	}
}

// NewPostgresGrammar, Postgres() için takma addır.
func NewPostgresGrammar() *PostgresGrammar {
	return Postgres()
}
