package perceptron

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/louiezzang/yg-nlp-sub000/alg/model"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

type StopCondition func(curIt, numIt, generations int, model Model) bool

// ProgressFunc is called after every instance of every iteration.
type ProgressFunc func(iteration, instance int)

// LinearPerceptron trains an arc-factored model. The first iteration only adds
// the gold features (warm start); every later iteration decodes each sentence
// with the live weights and, per modifier, moves weight from the predicted
// edge to the gold edge when they disagree.
type LinearPerceptron struct {
	Decoder    InstanceDecoder
	Updater    UpdateStrategy
	Iterations int
	Labeled    bool
	Model      Model
	Log        bool
	Continue   StopCondition
	Progress   ProgressFunc

	// Errors holds the number of wrong edges of every decoding iteration
	Errors          []int
	FailedInstances int
}

var _ SupervisedTrainer = &LinearPerceptron{}

var PercepAllOut bool = false

var ErrNoInstances = errors.New("no training instances")

func (m *LinearPerceptron) Init(newModel Model) {
	m.Model = newModel
	m.Errors = nil
	m.FailedInstances = 0
	if m.Updater == nil {
		m.Updater = &AveragedStrategy{}
	}
}

func DefaultStopCondition(iteration, iterations, generations int, model Model) bool {
	return iteration <= iterations
}

type goldInstance struct {
	Instance
	gold types.Tree
}

// prepare resolves every gold tree before any weight is touched, so that a
// bad instance fails training as a whole.
func (m *LinearPerceptron) prepare(instances []Instance) ([]goldInstance, error) {
	if len(instances) == 0 {
		return nil, ErrNoInstances
	}
	retval := make([]goldInstance, len(instances))
	for i, instance := range instances {
		gold, err := instance.Gold()
		if err != nil {
			return nil, fmt.Errorf("instance %d: %w", i, err)
		}
		if len(gold) != instance.Len()-1 {
			return nil, fmt.Errorf("instance %d: %d gold edges for %d tokens", i, len(gold), instance.Len()-1)
		}
		for j := range gold {
			if m.Labeled && !gold[j].HasLabel {
				return nil, fmt.Errorf("instance %d: labeled training requires labels", i)
			}
			gold[j].Features = instance.Features(gold[j].Head, gold[j].Modifier)
		}
		retval[i] = goldInstance{instance, gold}
	}
	return retval, nil
}

func (m *LinearPerceptron) goldLabel(edge types.Edge) string {
	if m.Labeled {
		return edge.Label
	}
	return model.NO_LABEL
}

func (m *LinearPerceptron) Train(instances []Instance) (*model.Dense, error) {
	if m.Model == nil {
		panic("Model not initialized")
	}
	if m.Decoder == nil {
		panic("Decoder not set")
	}
	if m.Iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", m.Iterations)
	}
	if m.Continue == nil {
		m.Continue = DefaultStopCondition
	}
	goldInstances, err := m.prepare(instances)
	if err != nil {
		return nil, err
	}
	m.Updater.Init(m.Model, len(goldInstances), m.Iterations)
	m.train(goldInstances)
	return m.Updater.Finalize(m.Model), nil
}

func (m *LinearPerceptron) train(goldInstances []goldInstance) {
	var (
		generations int
		logPrefix   string
	)
	prevPrefix := log.Prefix()
	prevFlags := log.Flags()
	for i := 1; m.Continue(i, m.Iterations, generations, m.Model); i++ {
		logPrefix = "IT #" + fmt.Sprintf("%v ", i) + prevPrefix
		log.SetPrefix(logPrefix)
		if PercepAllOut {
			log.SetPrefix("")
			log.SetFlags(0)
		}
		start := time.Now()
		var errs, edges int
		for j, instance := range goldInstances {
			if i == 1 {
				for _, gold := range instance.gold {
					m.Model.Update(m.goldLabel(gold), gold.Features, 1.0)
				}
			} else {
				wrong, ok := m.step(j, instance)
				if !ok {
					m.FailedInstances++
					continue
				}
				errs += wrong
				edges += len(instance.gold)
			}
			generations += 1
			m.Updater.Update(m.Model)
			if m.Progress != nil {
				m.Progress(i, j)
			}
		}
		if i == 1 {
			if m.Log {
				log.Println("Warm start over", len(goldInstances), "instances took", time.Since(start))
			}
			continue
		}
		m.Errors = append(m.Errors, errs)
		if m.Log {
			log.Printf("Errors %d of %d edges (%.2f%%), took %v", errs, edges, percent(errs, edges), time.Since(start))
		}
	}
	log.SetPrefix(prevPrefix)
	log.SetFlags(prevFlags)
}

// step decodes one instance and updates the weights of every wrong edge. It
// returns the number of wrong edges.
func (m *LinearPerceptron) step(j int, instance goldInstance) (int, bool) {
	predicted, ok := m.Decoder.Best(m.Model, instance.Len(), instance.Features)
	if !ok || len(predicted) != len(instance.gold) {
		if m.Log {
			log.Println("At instance", j, "skipped (parse)")
		}
		return 0, false
	}
	var wrong int
	for k := range predicted {
		pred, gold := &predicted[k], instance.gold[k]
		if pred.Compare(gold.Head, gold.Label) {
			continue
		}
		wrong++
		if PercepAllOut {
			log.Println("Error at", pred, "gold", gold)
		}
		m.Model.Update(m.goldLabel(*pred), pred.Features, -1.0)
		m.Model.Update(m.goldLabel(gold), gold.Features, 1.0)
	}
	if m.Log && !PercepAllOut {
		if wrong > 0 {
			log.Println("At instance", j, "failed", wrong, "of", len(instance.gold))
		} else {
			log.Println("At instance", j, "success")
		}
	}
	return wrong, true
}

func percent(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return 100 * float64(a) / float64(b)
}

// UpdateStrategy turns the accumulated weights into the final model.
type UpdateStrategy interface {
	Init(m Model, samples, iterations int)
	Update(model Model)
	Finalize(m Model) *model.Dense
}

type TrivialStrategy struct{}

func (u *TrivialStrategy) Init(m Model, samples, iterations int) {

}

func (u *TrivialStrategy) Update(m Model) {

}

func (u *TrivialStrategy) Finalize(m Model) *model.Dense {
	return m.Dense()
}

// AveragedStrategy divides the accumulated weights once, after the last
// iteration, by samples*iterations. The divisor uses the configured
// iteration count even when a stop condition ends training early.
type AveragedStrategy struct {
	P, S int
	// N counts the instances seen, for logging only
	N int
}

func (u *AveragedStrategy) Init(m Model, samples, iterations int) {
	u.N = 0
	u.P = iterations
	u.S = samples
}

func (u *AveragedStrategy) Update(m Model) {
	u.N += 1
}

func (u *AveragedStrategy) Finalize(m Model) *model.Dense {
	return m.Averaged(u.S, u.P)
}
