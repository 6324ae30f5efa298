package dialect

// MySQLGrammar, Grammar arayüzünü MySQL ve MariaDB için implemente eder.
//
// MySQL'de şema veritabanının kendisidir; bu yüzden varsayılan şema boştur ve
// tablo adları yalnızca FromSchema ile açıkça istenirse nitelenir.
type MySQLGrammar struct {
	BaseGrammar
}

// MySQL, yeni bir MySQL dilbilgisi örneği oluşturur.
func MySQL() *MySQLGrammar {
	return &MySQLGrammar{
		BaseGrammar: BaseGrammar{
			name: "mysql",
		},
	}
}

// NewMySQLGrammar, MySQL() kurucusuna verilen bir takma addır.
func NewMySQLGrammar() *MySQLGrammar {
	return MySQL()
}
