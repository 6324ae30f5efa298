package chocosql

import (
	"strings"

	"github.com/biyonik/go-choco-sql/dialect"
	"github.com/biyonik/go-choco-sql/internal/logging"
)

/*
 * ----------------------------------------------------------------------------
 * SUBQUERY COMPOSER
 * ----------------------------------------------------------------------------
 *
 * Subquery her çağrıda yığına yeni bir çerçeve (frame) iter. Part'lar sırayla
 * çalışır ve router çağrıları en üstteki çerçevenin buffer'ına yazar. Part'lar
 * bitince çerçeve yığından çıkarılır ve
 *
 *     [öncü token] ( çerçeve token'ları )
 *
 * biçiminde bir üst çerçeveye ya da, en dış çerçeve ise, hedef clause'a katlanır.
 *
 *   b.Select("population").From("locations").
 *       Where("country", "=", "Brazil").
 *       Subquery(chocosql.And,
 *           chocosql.Func(func(q *chocosql.Builder) { q.Where("country", "=", "Brazil") }),
 *           chocosql.Func(func(q *chocosql.Builder) { q.OrWhere("population", ">", 1000) }),
 *       )
 *
 *   -> ... WHERE country = 'Brazil' AND ( country = 'Brazil' OR population > 1000 );
 *
 * @author Ahmet ALTUN
 * @github github.com/biyonik
 * @linkedin linkedin.com/in/biyonik
 * @email ahmet.altun60@gmail.com
 * ----------------------------------------------------------------------------
 */

// Combinator, bir grubun önüne yazılan bağlaç ya da anahtar kelimedir.
type Combinator string

const (
	// None, öncü token yazılmaz.
	None Combinator = ""
	// And ve Or, grubu önceki koşullara bağlar.
	And Combinator = "AND"
	Or  Combinator = "OR"
	// AsWhere, AsSelect ve AsWith grubun hedef clause'unu da belirler.
	AsWhere  Combinator = "WHERE"
	AsSelect Combinator = "SELECT"
	AsWith   Combinator = "WITH"
)

// combinatorTargets, anahtar kelime bağlaçlarının yazıldığı clause'lardır.
var combinatorTargets = map[Combinator]dialect.Clause{
	AsWhere:  dialect.ClauseWhere,
	AsSelect: dialect.ClauseSelect,
	AsWith:   dialect.ClauseWith,
}

// target, bağlacın hedef clause'unu döndürür; And/Or/None için ok false'tur.
func (c Combinator) target() (dialect.Clause, bool) {
	t, ok := combinatorTargets[c]
	return t, ok
}

func (c Combinator) token() dialect.Token {
	if _, ok := c.target(); ok {
		return dialect.Keyword(string(c))
	}
	return dialect.Combinator(string(c))
}

// ----------------------------------------------------------------------------
// Parts
// ----------------------------------------------------------------------------

// Part, bir Subquery grubunun tek bir öğesidir: Func, Raw ya da Fragment.
type Part interface {
	apply(b *Builder)
}

// Func, grup içinde aynı Builder üzerinde çalıştırılan ertelenmiş bir işlemdir.
type Func func(*Builder)

func (fn Func) apply(b *Builder) {
	if fn != nil {
		fn(b)
	}
}

// Raw, kaçış yapılmadan yazılacak ham SQL parçasıdır.
// Bir grup öğesi olarak olduğu gibi eklenir; Where değeri olarak da kullanılabilir.
type Raw struct {
	SQL string
}

// NewRaw, yeni bir Raw SQL ifadesi oluşturur.
//
//	b.Where("created_at", ">", chocosql.NewRaw("now() - interval '1 day'"))
func NewRaw(sql string) Raw {
	return Raw{SQL: sql}
}

// String, ham SQL ifadesini string olarak döndürür.
func (r Raw) String() string {
	return r.SQL
}

// Verbatim, dialect.Verbatim arayüzünü sağlar.
func (r Raw) Verbatim() string {
	return r.SQL
}

// apply, ham metni en üstteki çerçeveye yazar. SELECT ya da WITH ile başlamayan
// metin bir koşul sayılır; sonraki Where çağrıları bağlaçla devam eder.
func (r Raw) apply(b *Builder) {
	b.sink(dialect.ClauseWhere).Append(dialect.Literal(r.SQL))
	if top := b.top(); top != nil && !startsWithKeyword(r.SQL, "SELECT", "WITH") {
		top.conditions = true
	}
}

func startsWithKeyword(sql string, keywords ...string) bool {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return false
	}
	for _, kw := range keywords {
		if strings.EqualFold(fields[0], kw) {
			return true
		}
	}
	return false
}

// Fragment, Compose ile ayrı bir Builder'da üretilmiş değişmez token listesidir.
// Subquery'ye Part olarak verildiğinde token'lar olduğu gibi eklenir.
type Fragment struct {
	tokens     []dialect.Token
	conditions bool
	err        error
}

// Tokens, parçanın token'larının bir kopyasını döndürür.
func (f Fragment) Tokens() []dialect.Token {
	out := make([]dialect.Token, len(f.tokens))
	copy(out, f.tokens)
	return out
}

// String, token'ları tek boşlukla birleştirir.
func (f Fragment) String() string {
	return dialect.Render(f.tokens)
}

// Err, parça oluşturulurken biriken hatadır.
func (f Fragment) Err() error {
	return f.err
}

func (f Fragment) apply(b *Builder) {
	if f.err != nil {
		b.fail(f.err)
	}
	if top := b.top(); top != nil {
		// Token'lar parantezsiz eklenir; parçadaki WHERE ya da koşullar çerçeveye geçer.
		if f.conditions {
			top.conditions = true
		}
		top.buf.Append(f.tokens...)
		return
	}
	b.clauses[dialect.ClauseWhere].Append(f.tokens...)
}

// Compose, fn'i aynı ayarlara sahip ayrı bir Builder'da, açık bir grubun içindeymiş
// gibi çalıştırır ve ürettiği token'ları döndürür. Bu Builder'ın durumu değişmez.
//
//	brazil := b.Compose(func(q *chocosql.Builder) {
//	    q.Where("country", "=", "Brazil").OrWhere("population", ">", 1000)
//	})
//	brazil.String() // country = 'Brazil' OR population > 1000
func (b *Builder) Compose(fn func(*Builder)) Fragment {
	nb := &Builder{
		grammar:       b.grammar,
		schema:        b.schema,
		strict:        b.strict,
		out:           b.out,
		defaultSchema: b.schema,
	}
	f := &frame{target: dialect.ClauseWhere}
	nb.frames = []*frame{f}

	if fn != nil {
		fn(nb)
	}
	if len(nb.frames) != 1 || nb.frames[0] != f {
		return Fragment{err: ErrOpenGroup}
	}

	return Fragment{
		tokens:     f.buf.Tokens(),
		conditions: f.conditions,
		err:        nb.err,
	}
}

// ----------------------------------------------------------------------------
// Frames
// ----------------------------------------------------------------------------

// frame, açık bir Subquery grubudur.
type frame struct {
	buf    dialect.Buffer
	comb   Combinator
	target dialect.Clause

	// conditions, çerçevede WHERE anahtar kelimesi ya da koşul var mı?
	conditions bool
}

// isConditionGroup, çerçeve bir iç SELECT değil de koşul grubu mu?
func (f *frame) isConditionGroup() bool {
	if !f.conditions {
		return false
	}
	first := f.buf.Tokens()
	return len(first) == 0 || first[0].Kind != dialect.TokenKeyword
}

func (b *Builder) top() *frame {
	if len(b.frames) == 0 {
		return nil
	}
	return b.frames[len(b.frames)-1]
}

// Subquery, parts'ı parantezli bir grup olarak ekler.
//
// comb AsWhere / AsSelect / AsWith ise grup o clause'a yazılır ve öncü token
// olarak anahtar kelime kullanılır. And / Or / None hedef clause'u değiştirmez:
// iç içe gruplarda dıştaki grubun hedefi, en dışta WHERE geçerlidir.
// parts boşsa hiçbir şey yapılmaz.
func (b *Builder) Subquery(comb Combinator, parts ...Part) *Builder {
	target := dialect.ClauseWhere
	if t, ok := comb.target(); ok {
		target = t
	} else if top := b.top(); top != nil {
		target = top.target
	}
	return b.subquery(comb, target, parts)
}

func (b *Builder) subquery(comb Combinator, target dialect.Clause, parts []Part) *Builder {
	if len(parts) == 0 {
		return b
	}

	depth := len(b.frames)
	f := &frame{comb: comb, target: target}
	b.frames = append(b.frames, f)
	logging.Debug("subquery opened", "depth", depth+1, "combinator", string(comb), "target", target.String())

	for _, p := range parts {
		if p != nil {
			p.apply(b)
		}
	}

	if len(b.frames) <= depth || b.frames[depth] != f {
		// Grup içinde Reset ya da Build çağrıldı; çerçeve artık geçersiz.
		return b
	}
	b.frames = b.frames[:depth]
	b.fold(f)
	return b
}

// fold, kapanan çerçeveyi üst çerçeveye ya da hedef clause'a yazar.
func (b *Builder) fold(f *frame) {
	parent := b.top()

	var dst *dialect.Buffer
	if parent != nil {
		dst = &parent.buf
	} else {
		dst = &b.clauses[f.target]
	}

	wasEmpty := dst.Empty()
	if lead, ok := leadToken(f.comb, f.target, wasEmpty, parent == nil); ok {
		dst.Append(lead)
	}
	dst.Append(dialect.ParenOpen())
	dst.Append(f.buf.Tokens()...)
	dst.Append(dialect.ParenClose())

	if parent != nil && wasEmpty && f.isConditionGroup() {
		parent.conditions = true
	}
	logging.Debug("subquery folded", "depth", len(b.frames), "tokens", f.buf.Len())
}

// leadToken, kapanan grubun önüne yazılacak token'ı seçer.
//
// Bir çerçevenin içinde, boş buffer'a (yani "(" hemen ardından) hiçbir şey yazılmaz.
// En dışta boş bir WHERE clause'una gelen grup WHERE ile başlar; anahtar kelime
// bağlacı dolu bir clause'a gelirse WHERE için AND, diğerleri için "," yazılır.
func leadToken(comb Combinator, target dialect.Clause, dstEmpty, topLevel bool) (dialect.Token, bool) {
	if !topLevel && dstEmpty {
		return dialect.Token{}, false
	}

	_, keyword := comb.target()
	switch {
	case comb == None:
		if topLevel && dstEmpty && target == dialect.ClauseWhere {
			return dialect.Keyword("WHERE"), true
		}
		return dialect.Token{}, false
	case keyword:
		if !topLevel || dstEmpty {
			return comb.token(), true
		}
		if target == dialect.ClauseWhere {
			return And.token(), true
		}
		return dialect.Separator(), true
	default:
		if topLevel && dstEmpty {
			if target == dialect.ClauseWhere {
				return dialect.Keyword("WHERE"), true
			}
			return dialect.Token{}, false
		}
		return comb.token(), true
	}
}
