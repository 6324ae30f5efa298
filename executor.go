package chocosql

import (
	"context"
	"database/sql"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/biyonik/go-choco-sql/dialect"
)

/*
=======================================================================================================================
  CHOCOSQL – Bağlantı Sağlayıcı

  DB, *sql.DB'yi sarar ve Builder'ın terminal çağrılarına "çalıştır ve getir" işlemini sunar:
  hazır sorgu metnini ve sonuç biçimini alır, her çalıştırma için havuzdan ayrı bir bağlantı
  ister, satırları Scanner ile toplar ve bağlantıyı geri bırakır.

  @author    Ahmet ALTUN
  @github    github.com/biyonik
  @linkedin  linkedin.com/in/biyonik
  @email     ahmet.altun60@gmail.com
=======================================================================================================================
*/

// QueryExecutor, satır döndüren sorguları çalıştırabilen her şeydir.
// *sql.DB, *sql.Conn ve *sql.Tx bu arayüzü sağlar.
type QueryExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	_ QueryExecutor = (*sql.DB)(nil)
	_ QueryExecutor = (*sql.Conn)(nil)
	_ QueryExecutor = (*sql.Tx)(nil)
)

// Fetcher, Builder'ın çalıştırma için kullandığı işbirlikçidir.
type Fetcher interface {
	Fetch(ctx context.Context, query string, mode OutputMode) (*Result, error)
}

var _ Fetcher = (*DB)(nil)

// DB, veritabanı bağlantısını sarar; gramer, scanner, log ve çıktı ayarlarını taşır.
type DB struct {
	*sql.DB                 // Standart Go DB nesnesi
	grammar dialect.Grammar // Derleme kuralları (Postgres / MySQL / SQLite)
	scanner Scanner         // Satırları Result'a toplar
	logger  Logger          // debug açıkken sorgular buraya yazılır
	debug   bool
	strict  bool
	schema  string     // Grammar'ın varsayılan şemasını ezer
	mode    OutputMode // Yeni Builder'ların varsayılan sonuç biçimi
	out     io.Writer  // PrintQuery hedefi
	cache   ResultCache
	closed  atomic.Bool
}

// NewDB, var olan bir *sql.DB üzerinden DB oluşturur.
// Gramer verilmezse Postgres kullanılır.
func NewDB(db *sql.DB, opts ...Option) *DB {
	d := newDB(db)
	applyOptions(d, opts)
	return d
}

func newDB(db *sql.DB) *DB {
	return &DB{
		DB:      db,
		grammar: dialect.Postgres(),
		scanner: NewDefaultScanner(),
		logger:  NopLogger{},
		mode:    OutputRecords,
		out:     os.Stdout,
	}
}

// Grammar, aktif grameri döndürür.
func (d *DB) Grammar() dialect.Grammar {
	return d.grammar
}

// Logger, sorgu logger'ını döndürür.
func (d *DB) Logger() Logger {
	return d.logger
}

// IsDebug, sorgular loglanıyor mu?
func (d *DB) IsDebug() bool {
	return d.debug
}

// Query, bu bağlantıya bağlı yeni bir Builder döndürür. Builder, her terminal
// çağrıdan sonra sıfırlandığı için oturum boyunca yeniden kullanılabilir.
func (d *DB) Query() *Builder {
	return newBuilder(d, d)
}

// Fetch, sorguyu ayrı bir bağlantı üzerinde çalıştırır ve sonucu mode biçiminde döndürür.
// Bağlantı, dönüşten önce havuza bırakılır. WithCache verildiyse önce önbelleğe bakılır.
func (d *DB) Fetch(ctx context.Context, query string, mode OutputMode) (res *Result, err error) {
	if d.DB == nil {
		return nil, ErrNoExecutor
	}
	if d.closed.Load() {
		return nil, ErrConnectionClosed
	}
	if hit, ok := d.cached(ctx, query, mode); ok {
		return hit, nil
	}

	start := time.Now()
	defer func() {
		if d.debug {
			d.logger.Log(query, time.Since(start), err)
		}
	}()

	conn, err := d.DB.Conn(ctx)
	if err != nil {
		return nil, NewQueryError("connect", query, err)
	}
	defer conn.Close()

	res, err = fetch(ctx, conn, d.scanner, query, mode)
	if err != nil {
		return nil, err
	}
	res.Query = query
	d.store(ctx, query, mode, res)
	return res, nil
}

func fetch(ctx context.Context, exec QueryExecutor, scanner Scanner, query string, mode OutputMode) (*Result, error) {
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, NewQueryError("query", query, err)
	}
	defer rows.Close()

	res, err := scanner.Scan(rows, mode)
	if err != nil {
		return nil, NewQueryError("scan", query, err)
	}
	return res, nil
}

// Close, veritabanı bağlantı havuzunu kapatır.
func (d *DB) Close() error {
	d.closed.Store(true)
	return d.DB.Close()
}

// Ping, bağlantının canlı olup olmadığını kontrol eder.
func (d *DB) Ping(ctx context.Context) error {
	return d.DB.PingContext(ctx)
}
