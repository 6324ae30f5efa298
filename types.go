package chocosql

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/biyonik/go-choco-sql/internal/logging"
)

/*
 * ----------------------------------------------------------------------------
 * CHOCOSQL TYPE DEFINITIONS
 * ----------------------------------------------------------------------------
 *
 * Bağlantı yapılandırması, sonuç biçimleri (OutputMode), terminal modları ve
 * sorgu logger'ı bu dosyadadır.
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// ----------------------------------------------------------------------------
// Output & Terminal Modes
// ----------------------------------------------------------------------------

// OutputMode, çalıştırılan sorgunun sonuç satırlarının hangi biçimde döneceğini seçer.
type OutputMode int

const (
	// OutputRecords, her satırı kolon adı -> değer eşlemesi olarak döndürür (varsayılan).
	OutputRecords OutputMode = iota
	// OutputRows, yalnızca ham satır değerlerini döndürür.
	OutputRows
	// OutputRowsWithHeader, önce kolon adlarını, ardından ham satırları döndürür.
	OutputRowsWithHeader
)

// String, OutputMode'un yapılandırma dosyasında kullanılan adını döndürür.
func (m OutputMode) String() string {
	switch m {
	case OutputRows:
		return "rows"
	case OutputRowsWithHeader:
		return "header"
	default:
		return "records"
	}
}

// ParseOutputMode, "rows", "header" ve "records" adlarını OutputMode'a çevirir.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "records", "dict", "dictionary":
		return OutputRecords, nil
	case "rows":
		return OutputRows, nil
	case "header", "headers", "rows_with_headers":
		return OutputRowsWithHeader, nil
	}
	return OutputRecords, fmt.Errorf("chocosql: unknown output mode %q", s)
}

// terminalMode, GetContext'in sorguyu ne yapacağını belirler.
type terminalMode int

const (
	terminalExecute terminalMode = iota
	terminalPrint                // önce yazdır, sonra çalıştır
	terminalReturn               // yalnızca sorgu metnini döndür
)

// ----------------------------------------------------------------------------
// Result
// ----------------------------------------------------------------------------

// Result, GetContext'in dönüşüdür. Query her zaman doludur; diğer alanlar
// Mode'a göre doldurulur. ReturnQuery ile çağrıldıysa Executed false olur.
type Result struct {
	Query    string
	Mode     OutputMode
	Executed bool

	Header  []string
	Rows    [][]any
	Records []map[string]any
}

// Len, dönen satır sayısını verir.
func (r *Result) Len() int {
	if r.Mode == OutputRecords {
		return len(r.Records)
	}
	return len(r.Rows)
}

// ----------------------------------------------------------------------------
// Connection Config
// ----------------------------------------------------------------------------

// Config, bağlantı sağlayıcısının ihtiyaç duyduğu ayarlardır.
type Config struct {
	Driver       string        // "pgx", "postgres" (lib/pq), "mysql" veya "sqlite"
	URL          string        // Doluysa diğer alanlar yerine doğrudan kullanılır
	Host         string        // Sunucu adresi
	Port         int           // Bağlantı portu
	Database     string        // Veritabanı adı; sqlite için dosya yolu
	Username     string        // Kullanıcı adı
	Password     string        // Parola
	SSLMode      string        // Postgres sslmode parametresi
	MaxOpenConns int           // Havuzdaki maksimum açık bağlantı (0 = sınırsız)
	MaxIdleConns int           // Boşta bekletilecek bağlantı sayısı
	ConnMaxLife  time.Duration // Bağlantı yaşam süresi
	ConnMaxIdle  time.Duration // Boşta kalma süresi
}

// DefaultConfig, yerel bir PostgreSQL sunucusu için varsayılan ayarları döndürür.
func DefaultConfig() *Config {
	return &Config{
		Driver:       "pgx",
		Host:         "localhost",
		Port:         5432,
		SSLMode:      "prefer",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
		ConnMaxLife:  5 * time.Minute,
		ConnMaxIdle:  5 * time.Minute,
	}
}

// DSN, sürücünün anlayacağı bağlantı dizesini üretir.
// Postgres sürücüleri için postgres:// URL'si, mysql için sürücünün DSN biçimi,
// sqlite için dosya yolu döner.
func (c *Config) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}

	switch c.Driver {
	case "sqlite", "sqlite3":
		if c.Database == "" {
			return ":memory:", nil
		}
		return c.Database, nil
	case "mysql":
		return c.mysqlDSN()
	}

	if c.Host == "" {
		return "", fmt.Errorf("%w: host is required when url is not set", ErrInvalidConfig)
	}
	if c.Database == "" {
		return "", fmt.Errorf("%w: database is required when url is not set", ErrInvalidConfig)
	}
	if c.Username == "" {
		return "", fmt.Errorf("%w: username is required when url is not set", ErrInvalidConfig)
	}

	host := c.Host
	if c.Port > 0 {
		host += ":" + strconv.Itoa(c.Port)
	}
	u := &url.URL{
		Scheme: "postgres",
		Host:   host,
		Path:   "/" + c.Database,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.Username, c.Password)
	} else {
		u.User = url.User(c.Username)
	}
	if c.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", c.SSLMode)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// mysqlDSN, go-sql-driver/mysql biçiminde "user:pass@tcp(host:port)/db" üretir.
func (c *Config) mysqlDSN() (string, error) {
	if c.Host == "" || c.Database == "" || c.Username == "" {
		return "", fmt.Errorf("%w: host, database and username are required when url is not set", ErrInvalidConfig)
	}

	mc := mysql.NewConfig()
	mc.User = c.Username
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = c.Host
	if c.Port > 0 {
		mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	}
	mc.DBName = c.Database
	return mc.FormatDSN(), nil
}

// ----------------------------------------------------------------------------
// Logger Interface
// ----------------------------------------------------------------------------

// Logger, çalıştırılan sorguları, sürelerini ve hataları izlemek için kullanılır.
type Logger interface {
	Log(query string, duration time.Duration, err error)
}

// NopLogger, tüm logları yutar.
type NopLogger struct{}

// Log, NopLogger'ın implementasyonudur.
func (NopLogger) Log(string, time.Duration, error) {}

// SlogLogger, sorguları internal/logging üzerinden slog'a yazar.
type SlogLogger struct{}

// Log, sorguyu yapılandırılmış log olarak yazar.
func (SlogLogger) Log(query string, duration time.Duration, err error) {
	logging.Query(query, duration, err)
}
