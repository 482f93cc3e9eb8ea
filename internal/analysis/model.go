package analysis

import (
	"math"
	"regexp"
	"strings"
)

// TrainingExample pairs a text snippet with its category label
type TrainingExample struct {
	Text  string
	Label string
}

// Categories is the fixed set of expense categories
var Categories = []string{"Travel", "Equipment", "Editing", "Marketing", "Production"}

// DefaultTrainingData is the built-in corpus used to fit the default
// category model. It is never mutated at runtime.
var DefaultTrainingData = []TrainingExample{
	{"flight ticket airline air travel", "Travel"},
	{"uber taxi cab ride transportation", "Travel"},
	{"hotel stay accommodation lodging", "Travel"},
	{"camera lens tripod lighting gear", "Equipment"},
	{"video editing software adobe premiere", "Editing"},
	{"facebook ads instagram promotion marketing", "Marketing"},
	{"set design props costumes production", "Production"},
	{"food catering lunch dinner", "Production"},
}

// Similarity is one training example's score against a query
type Similarity struct {
	Label string
	Score float64
}

// CategoryModel is a TF-IDF vector space fitted over a fixed corpus.
// It is immutable after construction and safe for concurrent use.
type CategoryModel struct {
	vocab  map[string]int
	idf    []float64
	docs   [][]float64 // one L2-normalized vector per training example
	labels []string
}

// tokens of two or more word characters, matching the usual vectorizer default
var tokenPattern = regexp.MustCompile(`\w\w+`)

func tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// NewCategoryModel fits a TF-IDF model over the given corpus.
// Term weights use smoothed inverse document frequency and each document
// vector is L2-normalized, so cosine similarity reduces to a dot product.
func NewCategoryModel(corpus []TrainingExample) *CategoryModel {
	m := &CategoryModel{
		vocab:  make(map[string]int),
		labels: make([]string, 0, len(corpus)),
	}

	// Build vocabulary and per-document term counts
	counts := make([]map[int]float64, len(corpus))
	for i, example := range corpus {
		m.labels = append(m.labels, example.Label)
		counts[i] = make(map[int]float64)
		for _, term := range tokenize(example.Text) {
			idx, ok := m.vocab[term]
			if !ok {
				idx = len(m.vocab)
				m.vocab[term] = idx
			}
			counts[i][idx]++
		}
	}

	// Smoothed IDF: ln((1+n)/(1+df)) + 1
	df := make([]float64, len(m.vocab))
	for _, doc := range counts {
		for idx := range doc {
			df[idx]++
		}
	}
	n := float64(len(corpus))
	m.idf = make([]float64, len(m.vocab))
	for idx, d := range df {
		m.idf[idx] = math.Log((1+n)/(1+d)) + 1
	}

	// Weight and normalize document vectors
	m.docs = make([][]float64, len(corpus))
	for i, doc := range counts {
		vec := make([]float64, len(m.vocab))
		for idx, tf := range doc {
			vec[idx] = tf * m.idf[idx]
		}
		normalize(vec)
		m.docs[i] = vec
	}

	return m
}

// normalize scales vec to unit length in place. A zero vector is left as-is.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// vectorize maps query text into the fitted space. Terms outside the
// vocabulary are ignored.
func (m *CategoryModel) vectorize(query string) []float64 {
	vec := make([]float64, len(m.vocab))
	for _, term := range tokenize(query) {
		if idx, ok := m.vocab[term]; ok {
			vec[idx] += m.idf[idx]
		}
	}
	normalize(vec)
	return vec
}

// Score computes the cosine similarity of the query against every training
// example, in corpus order. A query with no vocabulary overlap scores 0
// everywhere; this is not an error.
func (m *CategoryModel) Score(query string) []Similarity {
	vec := m.vectorize(query)
	results := make([]Similarity, len(m.docs))
	for i, doc := range m.docs {
		var dot float64
		for idx, v := range doc {
			dot += v * vec[idx]
		}
		results[i] = Similarity{Label: m.labels[i], Score: dot}
	}
	return results
}

// Best returns the highest-scoring label, breaking ties toward the earliest
// training example.
func (m *CategoryModel) Best(query string) Similarity {
	best := Similarity{}
	for i, sim := range m.Score(query) {
		if i == 0 || sim.Score > best.Score {
			best = sim
		}
	}
	return best
}
