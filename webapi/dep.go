package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/louiezzang/yg-nlp-sub000/app"
	"github.com/louiezzang/yg-nlp-sub000/nlp/format/conll"
	"github.com/louiezzang/yg-nlp-sub000/nlp/format/taggedsentence"
	"github.com/louiezzang/yg-nlp-sub000/nlp/parser/dependency/firstorder"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"

	"github.com/gorilla/mux"
)

const (
	FORMAT_CONLL  = "conll"
	FORMAT_TAGGED = "tagged"

	MAX_BODY = 8 << 20
)

var ErrNoModel = errors.New("no model loaded")

// Edge is the JSON form of a single attachment.
type Edge struct {
	Modifier int     `json:"modifier"`
	Head     int     `json:"head"`
	Label    string  `json:"label,omitempty"`
	Score    float64 `json:"score"`
}

type Tree struct {
	Score float64 `json:"score"`
	Edges []Edge  `json:"edges"`
}

type Sentence struct {
	Tokens []string `json:"tokens"`
	Trees  []Tree   `json:"trees"`
}

type ModelInfo struct {
	Labeled    bool     `json:"labeled"`
	Labels     []string `json:"labels"`
	Features   int      `json:"features"`
	Iterations int      `json:"iterations"`
	Samples    int      `json:"samples"`
	MaxK       int      `json:"maxK"`
}

func NewTree(tree types.Tree) Tree {
	retval := Tree{Score: tree.Score(), Edges: make([]Edge, len(tree))}
	for i, edge := range tree {
		retval.Edges[i] = Edge{
			Modifier: edge.Modifier,
			Head:     edge.Head,
			Label:    edge.Label,
			Score:    edge.Score,
		}
	}
	return retval
}

func NewSentence(sample *types.Sample, trees []types.Tree) Sentence {
	retval := Sentence{
		Tokens: make([]string, sample.Len()),
		Trees:  make([]Tree, len(trees)),
	}
	for i, token := range sample.Tokens {
		retval.Tokens[i] = token.Form
	}
	for i, tree := range trees {
		retval.Trees[i] = NewTree(tree)
	}
	return retval
}

// DepServer serves a trained model over HTTP. Requests parse under the read
// lock; reloading the model takes the write lock.
type DepServer struct {
	lock   sync.RWMutex
	parser *firstorder.Parser
	data   *app.Serialization

	ModelFile, FeaturesFile string
	MaxK                    int
	Workers                 int
}

func NewDepServer(modelFile, featuresFile string, maxK int) *DepServer {
	return &DepServer{ModelFile: modelFile, FeaturesFile: featuresFile, MaxK: maxK}
}

// Load reads the model and feature setup from disk and swaps them in.
func (s *DepServer) Load() error {
	data, dense, err := app.LoadModel(s.ModelFile)
	if err != nil {
		return err
	}
	extractor, err := data.Extractor(s.FeaturesFile)
	if err != nil {
		return err
	}
	s.Set(data, &firstorder.Parser{
		Extractor: extractor,
		Model:     dense,
		K:         1,
		Workers:   s.Workers,
	})
	return nil
}

func (s *DepServer) Set(data *app.Serialization, parser *firstorder.Parser) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.data, s.parser = data, parser
}

// Parse returns up to k trees for every sample, in input order.
func (s *DepServer) Parse(samples []*types.Sample, k int) ([][]types.Tree, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if s.MaxK > 0 && k > s.MaxK {
		return nil, fmt.Errorf("k capped at %d, got %d", s.MaxK, k)
	}
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.parser == nil {
		return nil, ErrNoModel
	}
	parser := *s.parser
	parser.K = k
	return parser.ParseAll(samples), nil
}

func (s *DepServer) Info() (*ModelInfo, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.data == nil {
		return nil, ErrNoModel
	}
	return &ModelInfo{
		Labeled:    s.data.Labeled,
		Labels:     s.data.Labels.Values(),
		Features:   s.data.Features.Len(),
		Iterations: s.data.Iterations,
		Samples:    s.data.Samples,
		MaxK:       s.MaxK,
	}, nil
}

func (s *DepServer) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/dep/parse", s.handleParse).Methods(http.MethodPost)
	r.HandleFunc("/dep/model", s.handleModel).Methods(http.MethodGet)
	r.HandleFunc("/dep/reload", s.handleReload).Methods(http.MethodPost)
	return r
}

func readSamples(format string, body io.Reader) ([]*types.Sample, error) {
	switch format {
	case "", FORMAT_CONLL:
		return conll.ReadSamples(body)
	case FORMAT_TAGGED:
		return taggedsentence.Read(body)
	default:
		return nil, fmt.Errorf("unknown input format %s", format)
	}
}

func (s *DepServer) handleParse(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	k := 1
	if kStr := query.Get("k"); len(kStr) > 0 {
		var err error
		if k, err = strconv.Atoi(kStr); err != nil {
			http.Error(w, fmt.Sprintf("bad k %q", kStr), http.StatusBadRequest)
			return
		}
	}
	samples, err := readSamples(query.Get("format"), io.LimitReader(r.Body, MAX_BODY))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	parsed, err := s.Parse(samples, k)
	if errors.Is(err, ErrNoModel) {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if query.Get("out") == FORMAT_CONLL {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if err := conll.WriteSamples(w, firstorder.Attach(samples, parsed)); err != nil {
			log.Println("Failed writing response:", err)
		}
		return
	}
	retval := make([]Sentence, len(samples))
	for i, sample := range samples {
		retval[i] = NewSentence(sample, parsed[i])
	}
	writeJSON(w, retval)
}

func (s *DepServer) handleModel(w http.ResponseWriter, r *http.Request) {
	info, err := s.Info()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, info)
}

func (s *DepServer) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Load(); err != nil {
		log.Println("Reload failed:", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.handleModel(w, r)
}

func writeJSON(w http.ResponseWriter, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(value); err != nil {
		log.Println("Failed writing response:", err)
	}
}
