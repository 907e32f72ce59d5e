package firstorder

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/louiezzang/yg-nlp-sub000/alg/eisner"
	"github.com/louiezzang/yg-nlp-sub000/alg/graph"
	"github.com/louiezzang/yg-nlp-sub000/alg/model"
	"github.com/louiezzang/yg-nlp-sub000/alg/perceptron"
	"github.com/louiezzang/yg-nlp-sub000/nlp/types"
)

const PERCEPTRON = "PERCEPTRON"

// Instance is a sample paired with the extractor rendering its features.
type Instance struct {
	Sample    *types.Sample
	Extractor *Extractor
}

var _ perceptron.Instance = &Instance{}

func (i *Instance) Len() int {
	return i.Sample.Len()
}

func (i *Instance) Features(head, mod int) []string {
	return i.Extractor.Features(i.Sample, head, mod)
}

func (i *Instance) Gold() (types.Tree, error) {
	return i.Sample.Gold()
}

type TrainConfig struct {
	Algorithm  string
	Iterations int
	Labeled    bool
	// Labels are registered in order before training, fixing the label table
	// order of the model
	Labels   []string
	Log      bool
	Progress perceptron.ProgressFunc
}

// Train learns a model from gold samples. Samples failing validation or
// without heads reject the whole training set.
func Train(samples []*types.Sample, x *Extractor, conf TrainConfig) (*model.Dense, error) {
	if conf.Algorithm != "" && conf.Algorithm != PERCEPTRON {
		return nil, fmt.Errorf("unknown training algorithm %q", conf.Algorithm)
	}
	var nonProjective int
	instances := make([]perceptron.Instance, len(samples))
	for i, sample := range samples {
		if err := sample.Validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if sample.HasHeads() && !graph.IsProjective(sample.Heads) {
			nonProjective++
		}
		instances[i] = &Instance{sample, x}
	}
	if conf.Log && nonProjective > 0 {
		log.Println("Non-projective gold trees, unreachable by the decoder:", nonProjective)
	}
	accum := model.NewMatrixSparse(conf.Labeled)
	for _, label := range conf.Labels {
		accum.RegisterLabel(label)
	}
	trainer := &perceptron.LinearPerceptron{
		Decoder:    &eisner.Decoder{K: 1},
		Updater:    &perceptron.AveragedStrategy{},
		Iterations: conf.Iterations,
		Labeled:    conf.Labeled,
		Log:        conf.Log,
		Progress:   conf.Progress,
	}
	trainer.Init(accum)
	dense, err := trainer.Train(instances)
	if err != nil {
		return nil, err
	}
	if conf.Log {
		log.Println("Failed instances:", trainer.FailedInstances)
		log.Println("Accumulated weight L1 norm:", accum.L1Norm())
		log.Println("Labels:", dense.NumLabels(), "Features:", dense.NumFeatures())
	}
	return dense, nil
}

// Parser decodes samples with a trained model.
type Parser struct {
	Extractor *Extractor
	Model     model.Interface
	K         int
	// Workers bounds the sentences ParseAll decodes at once; 0 uses GOMAXPROCS
	Workers int
}

func (p *Parser) decoder() *eisner.Decoder {
	return &eisner.Decoder{K: p.K}
}

// Parse returns up to K trees of the sample, best first.
func (p *Parser) Parse(s *types.Sample) []types.Tree {
	return p.decoder().Decode(p.Model, s.Len(), p.Extractor.FeatureFunc(s))
}

// Best returns the best tree of the sample.
func (p *Parser) Best(s *types.Sample) (types.Tree, bool) {
	return p.decoder().Best(p.Model, s.Len(), p.Extractor.FeatureFunc(s))
}

// ParseAll parses every sample, results following the order of samples. The
// model must not change while ParseAll runs.
func (p *Parser) ParseAll(samples []*types.Sample) [][]types.Tree {
	retval := make([][]types.Tree, len(samples))
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var (
		wg   sync.WaitGroup
		jobs = make(chan int, len(samples))
	)
	for i := range samples {
		jobs <- i
	}
	close(jobs)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				retval[i] = p.Parse(samples[i])
			}
		}()
	}
	wg.Wait()
	return retval
}

// Attach returns the samples with heads and labels of their best tree.
func Attach(samples []*types.Sample, parsed [][]types.Tree) []*types.Sample {
	retval := make([]*types.Sample, len(samples))
	for i, sample := range samples {
		if len(parsed[i]) == 0 {
			retval[i] = sample
			continue
		}
		retval[i] = sample.WithTree(parsed[i][0])
	}
	return retval
}
