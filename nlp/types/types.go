package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/louiezzang/yg-nlp-sub000/alg/graph"
)

const (
	ROOT_TOKEN = "<root>"
	ROOT_LABEL = "ROOT"
	ROOT_POS   = "<root>"

	// NO_HEAD marks the head of the ROOT token.
	NO_HEAD = -1
)

var ErrNoHeads = errors.New("sample has no heads")

// FeatureFunc returns the feature identifiers of attaching mod to head. It must
// be a pure function of the sentence and the two positions.
type FeatureFunc func(head, mod int) []string

// Token holds the attributes of a single sentence position.
type Token struct {
	Form, Lemma string
	CPOS, POS   string
	Feats       string
}

func (t Token) String() string {
	return t.Form + "/" + t.POS
}

// RootToken is the synthetic token found at position 0 of every sample.
func RootToken() Token {
	return Token{ROOT_TOKEN, ROOT_TOKEN, ROOT_POS, ROOT_POS, ""}
}

// Sample is a sentence of N+1 tokens where position 0 is ROOT. Heads and
// Labels, when present, have N+1 entries; Heads[0] is NO_HEAD.
type Sample struct {
	Tokens []Token
	Heads  []int
	Labels []string
}

// NewSample builds a sample from the N real tokens, prepending ROOT. heads and
// labels are indexed by token position starting at 1 and may be nil.
func NewSample(tokens []Token, heads []int, labels []string) *Sample {
	s := &Sample{Tokens: make([]Token, len(tokens)+1)}
	s.Tokens[0] = RootToken()
	copy(s.Tokens[1:], tokens)
	if heads != nil {
		s.Heads = make([]int, len(heads)+1)
		s.Heads[0] = NO_HEAD
		copy(s.Heads[1:], heads)
	}
	if labels != nil {
		s.Labels = make([]string, len(labels)+1)
		s.Labels[0] = ROOT_LABEL
		copy(s.Labels[1:], labels)
	}
	return s
}

// Len is the number of positions including ROOT.
func (s *Sample) Len() int {
	return len(s.Tokens)
}

func (s *Sample) HasHeads() bool {
	return s.Heads != nil
}

func (s *Sample) HasLabels() bool {
	return s.Labels != nil
}

// Validate checks the structural consistency of the sample.
func (s *Sample) Validate() error {
	if len(s.Tokens) == 0 {
		return errors.New("sample has no tokens, not even ROOT")
	}
	if s.Heads != nil {
		if len(s.Heads) != len(s.Tokens) {
			return fmt.Errorf("sample has %d tokens but %d heads", len(s.Tokens), len(s.Heads))
		}
		for mod := 1; mod < len(s.Heads); mod++ {
			head := s.Heads[mod]
			if head < 0 || head >= len(s.Tokens) {
				return fmt.Errorf("token %d has head %d out of range [0, %d]", mod, head, len(s.Tokens)-1)
			}
			if head == mod {
				return fmt.Errorf("token %d is its own head", mod)
			}
		}
		if err := graph.CheckTree(s.Heads); err != nil {
			return err
		}
	}
	if s.Labels != nil {
		if s.Heads == nil {
			return errors.New("sample has labels but no heads")
		}
		if len(s.Labels) != len(s.Tokens) {
			return fmt.Errorf("sample has %d tokens but %d labels", len(s.Tokens), len(s.Labels))
		}
	}
	return nil
}

// Gold returns the gold edges of the sample, ordered by modifier.
func (s *Sample) Gold() (Tree, error) {
	if !s.HasHeads() {
		return nil, ErrNoHeads
	}
	tree := make(Tree, 0, len(s.Heads)-1)
	for mod := 1; mod < len(s.Heads); mod++ {
		edge := Edge{
			Head:     s.Heads[mod],
			Modifier: mod,
			GoldHead: s.Heads[mod],
			Correct:  true,
		}
		if s.HasLabels() {
			edge.Label, edge.HasLabel = s.Labels[mod], true
			edge.GoldLabel = s.Labels[mod]
		}
		tree = append(tree, edge)
	}
	return tree, nil
}

// WithTree returns a copy of the sample whose heads and labels are taken from tree.
func (s *Sample) WithTree(tree Tree) *Sample {
	retval := &Sample{
		Tokens: s.Tokens,
		Heads:  make([]int, len(s.Tokens)),
	}
	for i := range retval.Heads {
		retval.Heads[i] = NO_HEAD
	}
	labeled := false
	for _, edge := range tree {
		if edge.HasLabel {
			labeled = true
			break
		}
	}
	if labeled {
		retval.Labels = make([]string, len(s.Tokens))
		retval.Labels[0] = ROOT_LABEL
	}
	for _, edge := range tree {
		if edge.Modifier <= 0 || edge.Modifier >= len(s.Tokens) {
			continue
		}
		retval.Heads[edge.Modifier] = edge.Head
		if labeled {
			retval.Labels[edge.Modifier] = edge.Label
		}
	}
	return retval
}

func (s *Sample) String() string {
	strs := make([]string, len(s.Tokens))
	for i, tok := range s.Tokens {
		strs[i] = tok.String()
	}
	return strings.Join(strs, " ")
}
