package chocosql

// =====================================================================================
// CHOCOSQL – SCANNER BİRİMİ
// -------------------------------------------------------------------------------------
// Çalıştırılan sorgunun satırları üç biçimden birine dönüştürülür:
//   OutputRows           → [][]any
//   OutputRowsWithHeader → Header + [][]any
//   OutputRecords        → []map[string]any (kolon adı → değer)
//
// @author    Ahmet ALTUN
// @github    github.com/biyonik
// @linkedin  linkedin.com/in/biyonik
// @email     ahmet.altun60@gmail.com
// =====================================================================================

// Rows, Scanner'ın okuduğu satır kaynağıdır. *sql.Rows bu arayüzü sağlar.
type Rows interface {
	Columns() ([]string, error)
	Next() bool
	Scan(dest ...any) error
	Err() error
}

// Scanner, satırları istenen OutputMode biçiminde bir Result'a toplar.
type Scanner interface {
	Scan(rows Rows, mode OutputMode) (*Result, error)
}

// DefaultScanner, kütüphanenin standart tarama motorudur.
// Sürücülerin []byte olarak döndürdüğü metin değerlerini string'e çevirir.
type DefaultScanner struct{}

// NewDefaultScanner, varsayılan scanner'ı oluşturur.
func NewDefaultScanner() *DefaultScanner {
	return &DefaultScanner{}
}

// Scan, tüm satırları okur. rows'u kapatmak çağıranın sorumluluğundadır.
func (s *DefaultScanner) Scan(rows Rows, mode OutputMode) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	res := &Result{Mode: mode, Executed: true}
	if mode == OutputRowsWithHeader {
		res.Header = columns
	}

	for rows.Next() {
		values := make([]any, len(columns))
		dests := make([]any, len(columns))
		for i := range values {
			dests[i] = &values[i]
		}
		if err := rows.Scan(dests...); err != nil {
			return nil, err
		}
		for i, v := range values {
			values[i] = normalize(v)
		}

		if mode == OutputRecords {
			record := make(map[string]any, len(columns))
			for i, col := range columns {
				record[col] = values[i]
			}
			res.Records = append(res.Records, record)
			continue
		}
		res.Rows = append(res.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return res, nil
}

func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
