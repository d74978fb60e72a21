package retrieval

import (
	"math"
	"regexp"
	"strings"

	"github.com/james-bowman/nlp"
	"github.com/james-bowman/nlp/measures/pairwise"
	"gonum.org/v1/gonum/mat"
)

// termRE matches words of two or more letters, digits or underscores.
var termRE = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// TFIDF is a SimilarityBackend using word unigram and bigram TF-IDF vectors
// and cosine similarity.
//
// The vector space is fitted on the query and the documents of each call,
// plus one blank document so that a term shared by every text keeps a
// positive inverse document frequency.
type TFIDF struct{}

var _ SimilarityBackend = TFIDF{}

// Similarities implements SimilarityBackend.
// It returns ErrEmptyVocabulary when no text contains a single term.
func (TFIDF) Similarities(query string, docs []string) ([]float64, error) {
	corpus := make([]string, 0, len(docs)+2)
	corpus = append(corpus, query)
	corpus = append(corpus, docs...)
	if !hasTerms(corpus) {
		return nil, ErrEmptyVocabulary
	}
	corpus = append(corpus, "")

	vectoriser := nlp.NewCountVectoriser()
	vectoriser.Tokeniser = bigramTokeniser{}
	pipeline := nlp.NewPipeline(vectoriser, nlp.NewTfidfTransformer())

	// Rows are terms, columns are texts.
	matrix, err := pipeline.FitTransform(corpus...)
	if err != nil {
		return nil, err
	}

	q := column(matrix, 0)
	scores := make([]float64, len(docs))
	for i := range docs {
		s := pairwise.CosineSimilarity(q, column(matrix, i+1))
		if math.IsNaN(s) {
			// A text without terms has a zero vector.
			s = 0
		}
		scores[i] = s
	}
	return scores, nil
}

func column(m mat.Matrix, j int) *mat.VecDense {
	rows, _ := m.Dims()
	return mat.NewVecDense(rows, mat.Col(nil, j, m))
}

func hasTerms(texts []string) bool {
	for _, text := range texts {
		if termRE.MatchString(strings.ToLower(text)) {
			return true
		}
	}
	return false
}

// bigramTokeniser is an nlp.Tokeniser emitting lowercased words and the
// bigram of each word with its predecessor.
type bigramTokeniser struct{}

var _ nlp.Tokeniser = bigramTokeniser{}

// ForEachIn calls f with every unigram and bigram of text.
func (bigramTokeniser) ForEachIn(text string, f func(token string)) {
	words := termRE.FindAllString(strings.ToLower(text), -1)
	for i, w := range words {
		f(w)
		if i > 0 {
			f(words[i-1] + " " + w)
		}
	}
}

// Tokenise returns every unigram and bigram of text.
func (t bigramTokeniser) Tokenise(text string) []string {
	var tokens []string
	t.ForEachIn(text, func(token string) {
		tokens = append(tokens, token)
	})
	return tokens
}
