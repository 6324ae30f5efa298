package dialect

// SQLiteGrammar, SQLite için gramerdir. Ana veritabanının şema adı "main"dir,
// bu nedenle "main.locations" biçimi SQLite'ta da geçerlidir.
type SQLiteGrammar struct {
	BaseGrammar
}

// SQLite, "main" varsayılan şemalı bir SQLite grameri oluşturur.
func SQLite() *SQLiteGrammar {
	return &SQLiteGrammar{
		BaseGrammar: BaseGrammar{
			name:   "sqlite",
			schema: "main",
		},
	}
}
