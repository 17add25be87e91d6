package token

type TokenType string

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"
	NEWLINE = "NEWLINE"
	INDENT  = "INDENT"
	DEDENT  = "DEDENT"

	// Identifiers + literals
	IDENT  = "IDENT"  // add, foobar, x, y, ...
	INT    = "INT"    // 1343456
	FLOAT  = "FLOAT"  // 1.5
	STRING = "STRING" // "foobar"

	// Operators
	ASSIGN     = "="
	PLUS       = "+"
	MINUS      = "-"
	ASTERISK   = "*"
	POWER      = "**"
	SLASH      = "/"
	INT_DIV    = "//"
	PERCENT    = "%"
	UNDERSCORE = "_"

	LT     = "<"
	LT_EQ  = "<="
	GT     = ">"
	GT_EQ  = ">="
	EQ     = "=="
	NOT_EQ = "!="

	COMPLEMENT  = "~"
	BITWISE_AND = "&"
	BITWISE_OR  = "|"
	BITWISE_XOR = "^"
	SHIFT_LEFT  = "<<"
	SHIFT_RIGHT = ">>"

	CONS  = "::"
	RANGE = ".."
	ARROW = "->"

	PLUS_ASSIGN        = "+="
	MINUS_ASSIGN       = "-="
	ASTERISK_ASSIGN    = "*="
	POWER_ASSIGN       = "**="
	SLASH_ASSIGN       = "/="
	INT_DIV_ASSIGN     = "//="
	PERCENT_ASSIGN     = "%="
	SHIFT_LEFT_ASSIGN  = "<<="
	SHIFT_RIGHT_ASSIGN = ">>="
	BITWISE_AND_ASSIGN = "&="
	BITWISE_OR_ASSIGN  = "|="
	BITWISE_XOR_ASSIGN = "^="

	// Delimiters
	COMMA = ","
	COLON = ":"

	LPAREN   = "("
	RPAREN   = ")"
	LBRACE   = "{"
	RBRACE   = "}"
	LBRACKET = "["
	RBRACKET = "]"

	// Keywords
	AND      = "AND"
	ASSERT   = "ASSERT"
	BREAK    = "BREAK"
	CASE     = "CASE"
	CONTINUE = "CONTINUE"
	DEF      = "DEF"
	ELIF     = "ELIF"
	ELSE     = "ELSE"
	FOR      = "FOR"
	IF       = "IF"
	IN       = "IN"
	LET      = "LET"
	MATCH    = "MATCH"
	NOT      = "NOT"
	OR       = "OR"
	PASS     = "PASS"
	RETURN   = "RETURN"
	VAR      = "VAR"
	WHILE    = "WHILE"
	TRUE     = "TRUE"
	FALSE    = "FALSE"

	// Type names
	TYPE_INT    = "TYPE_INT"
	TYPE_FLOAT  = "TYPE_FLOAT"
	TYPE_BOOL   = "TYPE_BOOL"
	TYPE_STRING = "TYPE_STRING"
	TYPE_VOID   = "TYPE_VOID"
)

type Token struct {
	Type     TokenType
	Literal  string
	Position int // the src index of the token
}

var keywords = map[string]TokenType{
	// constants
	"True":  TRUE,
	"False": FALSE,

	// declarations
	"def": DEF,
	"var": VAR,
	"let": LET,

	// flow control
	"if":       IF,
	"elif":     ELIF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"in":       IN,
	"break":    BREAK,
	"continue": CONTINUE,
	"return":   RETURN,
	"match":    MATCH,
	"case":     CASE,
	"pass":     PASS,
	"assert":   ASSERT,

	// logic
	"and": AND,
	"or":  OR,
	"not": NOT,

	// types
	"Int":    TYPE_INT,
	"Float":  TYPE_FLOAT,
	"Bool":   TYPE_BOOL,
	"String": TYPE_STRING,
	"Void":   TYPE_VOID,
}

func LookupIdent(ident string) TokenType {
	if ident == "_" {
		return UNDERSCORE
	}
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsAssignOp reports whether t is one of the compound assignment operators.
func IsAssignOp(t TokenType) bool {
	_, ok := AssignOps[t]
	return ok
}

// AssignOps maps each compound assignment to the binary operator it applies.
var AssignOps = map[TokenType]TokenType{
	PLUS_ASSIGN:        PLUS,
	MINUS_ASSIGN:       MINUS,
	ASTERISK_ASSIGN:    ASTERISK,
	POWER_ASSIGN:       POWER,
	SLASH_ASSIGN:       SLASH,
	INT_DIV_ASSIGN:     INT_DIV,
	PERCENT_ASSIGN:     PERCENT,
	SHIFT_LEFT_ASSIGN:  SHIFT_LEFT,
	SHIFT_RIGHT_ASSIGN: SHIFT_RIGHT,
	BITWISE_AND_ASSIGN: BITWISE_AND,
	BITWISE_OR_ASSIGN:  BITWISE_OR,
	BITWISE_XOR_ASSIGN: BITWISE_XOR,
}
