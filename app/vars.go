package app

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/louiezzang/yg-nlp-sub000/alg/model"
	"github.com/louiezzang/yg-nlp-sub000/nlp/parser/dependency/firstorder"
	"github.com/louiezzang/yg-nlp-sub000/util"

	"github.com/gonuts/commander"
)

var (
	allOut  bool = true
	verbose bool = false

	// processing options
	Iterations int
	K          int
	Labeled    bool
	Workers    int
	CPUs       int

	// file names
	tConll       string
	input        string
	inputGold    string
	outConll     string
	outKBest     string
	outFile      string
	modelFile    string
	featuresFile string
	labelsFile   string
)

var (
	DEFAULT_MODEL_DIRS = []string{".", "data", "models"}
	DEFAULT_CONF_DIRS  = []string{".", "conf"}
)

const (
	NUM_CPUS_FLAG = "cpus"
)

// Serialization is the on-disk form of a trained model. FeatureConf keeps
// the feature setup the model was trained with, so parsing renders the
// same features.
type Serialization struct {
	Labels, Features    *util.EnumSet
	Weights             []float64
	Labeled             bool
	Iterations, Samples int
	FeatureConf         []byte
}

func NewSerialization(dense *model.Dense, featureConf []byte, iterations, samples int) *Serialization {
	return &Serialization{
		Labels:      dense.Labels,
		Features:    dense.Features,
		Weights:     dense.Weights,
		Labeled:     dense.IsLabeled,
		Iterations:  iterations,
		Samples:     samples,
		FeatureConf: featureConf,
	}
}

// Model rebuilds the dense model, checking the matrix against the tables.
func (s *Serialization) Model() (*model.Dense, error) {
	if s.Labels == nil || s.Features == nil {
		return nil, errors.New("model is missing its symbol tables")
	}
	s.Labels.RebuildIndex()
	s.Features.RebuildIndex()
	s.Labels.Frozen, s.Features.Frozen = true, true
	dense := &model.Dense{
		Labels:    s.Labels,
		Features:  s.Features,
		Weights:   s.Weights,
		IsLabeled: s.Labeled,
	}
	if err := dense.Validate(); err != nil {
		return nil, err
	}
	return dense, nil
}

// Extractor returns the feature extractor of the model, or the one of
// featuresFile when set.
func (s *Serialization) Extractor(featuresFile string) (*firstorder.Extractor, error) {
	if len(featuresFile) > 0 || len(s.FeatureConf) == 0 {
		return firstorder.NewExtractorFromFile(featuresFile)
	}
	setup, err := firstorder.LoadFeatureConf(s.FeatureConf)
	if err != nil {
		return nil, err
	}
	return firstorder.NewExtractor(setup)
}

func EncodeModel(writer io.Writer, data *Serialization) error {
	return gob.NewEncoder(writer).Encode(data)
}

func DecodeModel(reader io.Reader) (*Serialization, error) {
	data := &Serialization{}
	if err := gob.NewDecoder(reader).Decode(data); err != nil {
		return nil, err
	}
	return data, nil
}

func WriteModel(file string, data *Serialization) error {
	fObj, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed creating model file %s: %w", file, err)
	}
	if err := EncodeModel(fObj, data); err != nil {
		fObj.Close()
		return fmt.Errorf("failed writing model to %s: %w", file, err)
	}
	return fObj.Close()
}

func ReadModel(file string) (*Serialization, error) {
	fObj, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed reading model from %s: %w", file, err)
	}
	defer fObj.Close()
	data, err := DecodeModel(fObj)
	if err != nil {
		return nil, fmt.Errorf("failed decoding model from %s: %w", file, err)
	}
	return data, nil
}

// LoadModel reads a model file, looking it up in the default model
// directories when it is not found as given.
func LoadModel(file string) (*Serialization, *model.Dense, error) {
	location, found := util.LocateFile(file, DEFAULT_MODEL_DIRS)
	if !found {
		return nil, nil, fmt.Errorf("model %s not found", file)
	}
	if allOut {
		log.Println("Found model file", location, "... loading model")
		if sum, err := util.MD5File(location); err == nil {
			log.Println("Model MD5:", sum)
		}
	}
	data, err := ReadModel(location)
	if err != nil {
		return nil, nil, err
	}
	dense, err := data.Model()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid model %s: %w", location, err)
	}
	if allOut {
		log.Println("Loaded model:", dense.NumLabels(), "labels", dense.NumFeatures(), "features")
	}
	return data, dense, nil
}

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	if err != nil {
		log.Println("Error accessing file", filename)
		log.Println(err)
		return false
	}
	return true
}

func VerifyFlags(cmd *commander.Command, required []string) error {
	for _, flag := range required {
		f := cmd.Flag.Lookup(flag)
		if f == nil || f.Value.String() == "" {
			log.Printf("Required flag %s not set", flag)
			return fmt.Errorf("required flag %s not set", flag)
		}
	}
	return nil
}
