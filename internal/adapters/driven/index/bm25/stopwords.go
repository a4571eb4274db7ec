package bm25

// stopwords are dropped during tokenization. Profile text and queries
// are short, so a compact list of English function words is enough;
// anything heavier just slows indexing without moving rankings.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true,
	"at": true, "be": true, "but": true, "by": true, "for": true,
	"from": true, "has": true, "have": true, "he": true, "her": true,
	"his": true, "i": true, "in": true, "is": true, "it": true,
	"its": true, "not": true, "of": true, "on": true, "or": true,
	"she": true, "that": true, "the": true, "these": true, "they": true,
	"this": true, "those": true, "to": true, "was": true, "we": true,
	"were": true, "what": true, "where": true, "which": true,
	"who": true, "will": true, "with": true, "you": true,
}
