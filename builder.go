package chocosql

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/biyonik/go-choco-sql/dialect"
	"github.com/biyonik/go-choco-sql/internal/logging"
	"github.com/biyonik/go-choco-sql/internal/validation"
)

// Builder, SELECT sorgularını akıcı bir arayüz (fluent interface) ile oluşturur.
//
// Her clause (WITH, SELECT, FROM, WHERE) için ayrı bir token buffer tutulur.
// Subquery çağrıları açık bir çerçeve (frame) yığını kullanır: çerçeve açıkken
// yapılan tüm çağrılar en üstteki çerçeveye yazılır, çerçeve kapanınca içeriği
// parantez içinde bir üst çerçeveye ya da hedef clause'a katlanır.
//
// Builder örnekleri concurrent-safe değildir. Build ve GetContext durumu sıfırlar,
// bu sayede aynı örnek birbirinden bağımsız sorgular için tekrar kullanılabilir.
//
//	rows, err := db.Query().
//	    Select("country AS pais", "population AS populacao").
//	    From("locations").
//	    Where("country", "=", "Brazil").
//	    RowsWithHeaders().
//	    GetContext(ctx)
//
// @author Ahmet ALTUN
// @github github.com/biyonik
// @linkedin linkedin.com/in/biyonik
// @email ahmet.altun60@gmail.com
type Builder struct {
	fetcher Fetcher
	grammar dialect.Grammar
	schema  string // FromSchema ile ayarlanır; boşsa gramerin varsayılanı
	strict  bool
	out     io.Writer

	// Clause buffer'ları, dialect.Clause değerleriyle indekslenir.
	clauses [dialect.ClauseCount]dialect.Buffer

	// Açık Subquery çerçeveleri; len(frames) derinliktir.
	frames []*frame

	defaultSchema string
	defaultMode   OutputMode
	mode          OutputMode
	terminal      terminalMode

	// Accumulated error
	err error
}

// newBuilder, DB ayarlarını taşıyan yeni bir Builder oluşturur.
func newBuilder(d *DB, f Fetcher) *Builder {
	out := d.out
	if out == nil {
		out = os.Stdout
	}
	return &Builder{
		fetcher:       f,
		grammar:       d.grammar,
		schema:        d.schema,
		strict:        d.strict,
		out:           out,
		defaultSchema: d.schema,
		defaultMode:   d.mode,
		mode:          d.mode,
	}
}

// ----------------------------------------------------------------------------
// Clause Router
// ----------------------------------------------------------------------------

// Select, seçilecek alanları ekler. Alan verilmezse ya da tek alan "*" ise "SELECT *" yazılır.
// Alan metinleri ("country AS pais" gibi) olduğu gibi yazılır.
func (b *Builder) Select(fields ...string) *Builder {
	if b.strict {
		for _, f := range fields {
			if _, _, err := validation.ValidateField(f); err != nil {
				b.fail(NewValidationError(f, "field", err.Error()))
			}
		}
	}

	sink := b.sink(dialect.ClauseSelect)
	if b.Depth() == 0 && !sink.Empty() {
		// Üst düzeyde ikinci Select alan listesini genişletir.
		sink.Append(dialect.Separator())
	} else {
		sink.Append(dialect.Keyword("SELECT"))
	}

	if len(fields) == 0 || (len(fields) == 1 && fields[0] == "*") {
		sink.Append(dialect.Identifier("*"))
		return b
	}
	for i, f := range fields {
		if i > 0 {
			sink.Append(dialect.Separator())
		}
		sink.Append(dialect.Identifier(f))
	}
	return b
}

// From, sorgunun tablosunu ekler. Nokta içermeyen adlar şema ile nitelenir.
func (b *Builder) From(table string) *Builder {
	if b.strict {
		if err := validation.ValidateTable(table); err != nil {
			b.fail(NewValidationError(table, "table", err.Error()))
		}
	}

	sink := b.sink(dialect.ClauseFrom)
	if b.Depth() == 0 && !sink.Empty() {
		sink.Append(dialect.Separator())
	} else {
		sink.Append(dialect.Keyword("FROM"))
	}
	sink.Append(dialect.Identifier(b.grammar.QualifyTable(table, b.schema)))
	return b
}

// FromSchema, nitelenmemiş tablolar için kullanılacak şemayı ayarlar.
// Sonraki From çağrılarını etkiler.
func (b *Builder) FromSchema(schema string) *Builder {
	if b.strict {
		if err := validation.ValidateIdentifier(schema); err != nil {
			b.fail(NewValidationError(schema, "schema", err.Error()))
		}
	}
	b.schema = schema
	return b
}

// Where, AND bağlacıyla bir koşul ekler.
func (b *Builder) Where(field, operator string, value any) *Builder {
	return b.WhereWith(And, field, operator, value)
}

// OrWhere, OR bağlacıyla bir koşul ekler.
func (b *Builder) OrWhere(field, operator string, value any) *Builder {
	return b.WhereWith(Or, field, operator, value)
}

// WhereIn, "field IN (v1, v2, ...)" koşulu ekler. values boşsa hiçbir şey yapmaz.
func (b *Builder) WhereIn(field string, values []any) *Builder {
	return b.whereIn(And, field, values)
}

// OrWhereIn, WhereIn'in OR bağlaçlı halidir.
func (b *Builder) OrWhereIn(field string, values []any) *Builder {
	return b.whereIn(Or, field, values)
}

func (b *Builder) whereIn(comb Combinator, field string, values []any) *Builder {
	if len(values) == 0 {
		return b
	}
	return b.WhereWith(comb, field, "IN", values)
}

// WhereWith, verilen bağlaçla bir koşul ekler.
//
// Üst düzeyde WHERE buffer'ı boşsa koşulun önüne WHERE yazılır, değilse bağlaç.
// Bir Subquery çerçevesi içinde:
//   - çerçeve boşsa koşul çıplak yazılır (grubun ilk koşulu),
//   - çerçeve zaten koşul içeriyorsa bağlaç yazılır,
//   - çerçeve bir iç SELECT taşıyorsa ve henüz WHERE yoksa WHERE yazılır.
func (b *Builder) WhereWith(comb Combinator, field, operator string, value any) *Builder {
	tok, err := b.literal(value)
	if err != nil {
		b.fail(err)
		return b
	}
	if b.strict {
		if _, err := validation.NormalizeOperator(operator); err != nil {
			b.fail(newOperatorError(operator, err.Error()))
		}
	}

	b.condition(comb, dialect.Identifier(field), dialect.Identifier(operator), tok)
	return b
}

// WhereSubquery, "field operator ( ... )" koşulu ekler; parantez içi parts ile
// oluşturulur. Hedef clause her zaman WHERE'dir. parts boşsa hiçbir şey yapmaz.
//
//	b.Select("name").From("users").
//	    WhereSubquery("id", "IN",
//	        chocosql.Func(func(q *chocosql.Builder) { q.Select("user_id") }),
//	        chocosql.Func(func(q *chocosql.Builder) { q.From("orders") }),
//	    )
func (b *Builder) WhereSubquery(field, operator string, parts ...Part) *Builder {
	return b.whereSubquery(And, field, operator, parts)
}

// OrWhereSubquery, WhereSubquery'nin OR bağlaçlı halidir.
func (b *Builder) OrWhereSubquery(field, operator string, parts ...Part) *Builder {
	return b.whereSubquery(Or, field, operator, parts)
}

func (b *Builder) whereSubquery(comb Combinator, field, operator string, parts []Part) *Builder {
	if len(parts) == 0 {
		return b
	}
	if b.strict {
		if _, err := validation.NormalizeOperator(operator); err != nil {
			b.fail(newOperatorError(operator, err.Error()))
		}
	}
	b.condition(comb, dialect.Identifier(field), dialect.Identifier(operator))
	return b.subquery(None, dialect.ClauseWhere, parts)
}

// condition, WHERE önekini (WHERE / bağlaç / hiçbiri) seçip koşul token'larını yazar.
func (b *Builder) condition(comb Combinator, tokens ...dialect.Token) {
	if top := b.top(); top != nil {
		switch {
		case top.buf.Empty():
		case top.conditions:
			top.buf.Append(comb.token())
		default:
			top.buf.Append(dialect.Keyword("WHERE"))
		}
		top.buf.Append(tokens...)
		top.conditions = true
		return
	}

	where := &b.clauses[dialect.ClauseWhere]
	if where.Empty() {
		where.Append(dialect.Keyword("WHERE"))
	} else {
		where.Append(comb.token())
	}
	where.Append(tokens...)
}

// literal, değeri gramer ile biçimlendirir ve tırnak içeren metinleri işaretler.
func (b *Builder) literal(value any) (dialect.Token, error) {
	if text, bad := validation.UnsafeText(value); bad {
		logging.SecurityEvent("unescaped_literal", "builder",
			"text", text, "dialect", b.grammar.Name())
		if b.strict {
			return dialect.Token{}, newUnsafeLiteralError(text)
		}
	}
	return b.grammar.FormatValue(value)
}

// sink, çağrının yazacağı buffer'dır: açık bir çerçeve varsa onun buffer'ı,
// yoksa verilen clause'un buffer'ı.
func (b *Builder) sink(c dialect.Clause) *dialect.Buffer {
	if top := b.top(); top != nil {
		return &top.buf
	}
	return &b.clauses[c]
}

// ----------------------------------------------------------------------------
// Output & Terminal Flags
// ----------------------------------------------------------------------------

// RowsOnly, sonuçların yalnızca ham satırlar olarak dönmesini sağlar.
func (b *Builder) RowsOnly() *Builder {
	b.mode = OutputRows
	return b
}

// RowsWithHeaders, sonuçların önce kolon adları, sonra ham satırlar olarak dönmesini sağlar.
func (b *Builder) RowsWithHeaders() *Builder {
	b.mode = OutputRowsWithHeader
	return b
}

// RowsAsRecords, her satırın kolon adı -> değer eşlemesi olarak dönmesini sağlar.
func (b *Builder) RowsAsRecords() *Builder {
	b.mode = OutputRecords
	return b
}

// PrintQuery, GetContext sorguyu çalıştırmadan önce çıktıya yazar.
func (b *Builder) PrintQuery() *Builder {
	b.terminal = terminalPrint
	return b
}

// ReturnQuery, GetContext sorguyu çalıştırmaz; yalnızca Result.Query doldurulur.
func (b *Builder) ReturnQuery() *Builder {
	b.terminal = terminalReturn
	return b
}

// ----------------------------------------------------------------------------
// Terminal Operations
// ----------------------------------------------------------------------------

// ToSQL, sorguyu durumu değiştirmeden derler.
func (b *Builder) ToSQL() (string, error) {
	if b.err != nil {
		return "", b.err
	}
	return b.grammar.CompileSelect(b)
}

// Build, sorguyu derler ve Builder'ı sıfırlar. Hata olsa da durum sıfırlanır.
func (b *Builder) Build() (string, error) {
	defer b.Reset()
	return b.ToSQL()
}

// GetContext, sorguyu derler ve terminal moduna göre işler:
// ReturnQuery ile yalnızca sorgu metni döner; PrintQuery ile sorgu önce
// yazdırılır, ardından çalıştırılır; aksi halde doğrudan çalıştırılır.
// Builder her durumda sıfırlanır.
func (b *Builder) GetContext(ctx context.Context) (*Result, error) {
	terminal, mode := b.terminal, b.mode

	query, err := b.Build()
	if err != nil {
		return nil, err
	}

	switch terminal {
	case terminalReturn:
		return &Result{Query: query, Mode: mode}, nil
	case terminalPrint:
		if _, err := fmt.Fprintln(b.out, query); err != nil {
			return nil, err
		}
	}

	if b.fetcher == nil {
		return nil, ErrNoExecutor
	}
	return b.fetcher.Fetch(ctx, query, mode)
}

// Get, GetContext'in context.Background() versiyonudur.
func (b *Builder) Get() (*Result, error) {
	return b.GetContext(context.Background())
}

// ----------------------------------------------------------------------------
// State
// ----------------------------------------------------------------------------

// Reset, tüm sorgu durumunu temizler (bağlantı, gramer ve ayarlar hariç).
func (b *Builder) Reset() *Builder {
	for i := range b.clauses {
		b.clauses[i].Reset()
	}
	b.frames = nil
	b.schema = b.defaultSchema
	b.mode = b.defaultMode
	b.terminal = terminalExecute
	b.err = nil
	return b
}

// Err, birikmiş hatayı döndürür.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// When, koşullu olarak callback uygular.
func (b *Builder) When(condition bool, fn func(*Builder)) *Builder {
	if condition {
		fn(b)
	}
	return b
}

// Unless, When'in tersidir.
func (b *Builder) Unless(condition bool, fn func(*Builder)) *Builder {
	return b.When(!condition, fn)
}

// GetClause, clause'un token listesinin kopyasını döndürür.
func (b *Builder) GetClause(c dialect.Clause) []dialect.Token {
	if c < 0 || c >= dialect.ClauseCount {
		return nil
	}
	return b.clauses[c].Tokens()
}

// Depth, açık Subquery çerçevesi sayısıdır. Sıfırdan büyükse builder bir alt sorgunun içindedir.
func (b *Builder) Depth() int {
	return len(b.frames)
}

var _ dialect.QueryBuilder = (*Builder)(nil)
