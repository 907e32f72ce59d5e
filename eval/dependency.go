package eval

import (
	"errors"
	"fmt"

	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

// Attachment scores every non-ROOT token of a parsed sample against its gold
// sample. The returned result counts labeled attachments (a token is a true
// positive when head and label match); its Other field holds the unlabeled
// result. Labels are ignored when either sample has none.
func Attachment(test, gold *types.Sample) (*Result, error) {
	if !test.HasHeads() || !gold.HasHeads() {
		return nil, types.ErrNoHeads
	}
	if test.Len() != gold.Len() {
		return nil, fmt.Errorf("parsed sample has %d tokens, gold has %d", test.Len()-1, gold.Len()-1)
	}
	labeled := test.HasLabels() && gold.HasLabels()
	retval := &Result{ // retval is LAS
		Other: &Result{}, // Other is UAS evaluation
	}
	uas := retval.Other.(*Result)
	for mod := 1; mod < gold.Len(); mod++ {
		if test.Heads[mod] != gold.Heads[mod] {
			uas.FP += 1
			retval.FP += 1
			continue
		}
		uas.TP += 1
		if labeled && test.Labels[mod] != gold.Labels[mod] {
			retval.FP += 1
		} else {
			retval.TP += 1
		}
	}
	return retval, nil
}

// Corpus evaluates aligned parsed and gold corpora, returning the labeled and
// unlabeled totals.
func Corpus(test, gold []*types.Sample) (las, uas *Total, err error) {
	if len(test) != len(gold) {
		return nil, nil, errors.New("Evaluation set sizes are different")
	}
	las = &Total{Results: make([]*Result, 0, len(test))}
	uas = &Total{Results: make([]*Result, 0, len(test))}
	for i := range test {
		result, err := Attachment(test[i], gold[i])
		if err != nil {
			return nil, nil, fmt.Errorf("sentence %d: %w", i+1, err)
		}
		las.Add(result)
		uas.Add(result.Other.(*Result))
	}
	return las, uas, nil
}
