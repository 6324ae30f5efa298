package dialect

import "strings"

// TokenKind, bir SQL parçasının (token) hangi rolde olduğunu belirtir.
type TokenKind int

const (
	TokenKeyword TokenKind = iota
	TokenIdentifier
	TokenLiteral
	TokenCombinator
	TokenParenOpen
	TokenParenClose
)

// String, TokenKind'ın okunabilir adını döndürür.
func (k TokenKind) String() string {
	names := [...]string{
		"Keyword", "Identifier", "Literal", "Combinator", "ParenOpen", "ParenClose",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Token, render sırasında metni aynen yazılan, türü etiketlenmiş bir SQL parçasıdır.
type Token struct {
	Kind TokenKind
	Text string
}

// String, token metnini döndürür.
func (t Token) String() string {
	return t.Text
}

// Keyword, SELECT, FROM, WHERE gibi bir anahtar kelime token'ı üretir.
func Keyword(text string) Token { return Token{Kind: TokenKeyword, Text: text} }

// Identifier, alan, tablo veya operatör token'ı üretir. Metin doğrulanmaz.
func Identifier(text string) Token { return Token{Kind: TokenIdentifier, Text: text} }

// Literal, biçimlendirilmiş bir değer token'ı üretir.
func Literal(text string) Token { return Token{Kind: TokenLiteral, Text: text} }

// Combinator, AND / OR bağlacı token'ı üretir.
func Combinator(text string) Token { return Token{Kind: TokenCombinator, Text: text} }

// ParenOpen ve ParenClose, alt sorgu / grup sınırlarını işaretler.
func ParenOpen() Token  { return Token{Kind: TokenParenOpen, Text: "("} }
func ParenClose() Token { return Token{Kind: TokenParenClose, Text: ")"} }

// ----------------------------------------------------------------------------
// Clause kinds
// ----------------------------------------------------------------------------

// Clause, sorgunun bir bölümünü (SELECT, FROM, WHERE ...) tanımlar.
// Değerler, Builder içindeki buffer dizisinin indeksleri olarak da kullanılır.
type Clause int

const (
	ClauseWith Clause = iota
	ClauseSelect
	ClauseFrom
	ClauseWhere

	// ClauseCount, tanımlı clause sayısıdır.
	ClauseCount
)

// String, clause'un SQL anahtar kelimesini döndürür.
func (c Clause) String() string {
	names := [...]string{"WITH", "SELECT", "FROM", "WHERE"}
	if c >= 0 && int(c) < len(names) {
		return names[c]
	}
	return "UNKNOWN"
}

// EmitOrder, derleme sırasında clause'ların yazılma sırasıdır.
var EmitOrder = [...]Clause{ClauseWith, ClauseSelect, ClauseFrom, ClauseWhere}

// ----------------------------------------------------------------------------
// Buffer
// ----------------------------------------------------------------------------

// Buffer, sıralı token listesidir. Sıfır değeri kullanıma hazırdır.
type Buffer struct {
	tokens []Token
}

// Append, buffer'ın sonuna token ekler.
func (b *Buffer) Append(tokens ...Token) {
	b.tokens = append(b.tokens, tokens...)
}

// Len, token sayısını döndürür.
func (b *Buffer) Len() int {
	return len(b.tokens)
}

// Empty, buffer boş mu?
func (b *Buffer) Empty() bool {
	return len(b.tokens) == 0
}

// Last, son token'ı döndürür; buffer boşsa ok false olur.
func (b *Buffer) Last() (tok Token, ok bool) {
	if len(b.tokens) == 0 {
		return Token{}, false
	}
	return b.tokens[len(b.tokens)-1], true
}

// Contains, verilen tür ve metne sahip bir token var mı?
func (b *Buffer) Contains(kind TokenKind, text string) bool {
	for _, t := range b.tokens {
		if t.Kind == kind && t.Text == text {
			return true
		}
	}
	return false
}

// Tokens, token listesinin bir kopyasını döndürür.
func (b *Buffer) Tokens() []Token {
	out := make([]Token, len(b.tokens))
	copy(out, b.tokens)
	return out
}

// Reset, buffer'ı boşaltır.
func (b *Buffer) Reset() {
	b.tokens = nil
}

// Render, token metinlerini tek boşlukla birleştirir.
func (b *Buffer) Render() string {
	return Render(b.tokens)
}

// Render, token listesini tek boşlukla birleştirir.
func Render(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.Text
	}
	return strings.Join(parts, " ")
}

// Separator, alan ve tablo listelerindeki "," ayracıdır.
func Separator() Token { return Token{Kind: TokenCombinator, Text: ","} }
