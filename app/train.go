package app

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/louiezzang/yg-nlp-sub000/nlp/format/conll"
	"github.com/louiezzang/yg-nlp-sub000/nlp/parser/dependency/firstorder"
	"github.com/louiezzang/yg-nlp-sub000/util"
	"github.com/louiezzang/yg-nlp-sub000/util/conf"

	"github.com/gonuts/commander"
	"github.com/gosuri/uiprogress"
)

func TrainConfigOut() {
	log.Println("Configuration")
	log.Printf("Algorithm:\t\t%s", firstorder.PERCEPTRON)
	log.Printf("Iterations:\t\t%d", Iterations)
	log.Printf("Labeled:\t\t%v", Labeled)
	log.Printf("Model file:\t\t%s", modelFile)
	log.Println()
	if len(featuresFile) > 0 {
		log.Printf("Features File:\t%s", featuresFile)
	} else {
		log.Printf("Features File:\t<default>")
	}
	if len(labelsFile) > 0 {
		log.Printf("Labels File:\t\t%s", labelsFile)
	}
	log.Println()
	log.Println("Data")
	log.Printf("Train file (conll):\t%s", tConll)
}

// readFeatureConf returns the raw feature setup to train with and store in
// the model.
func readFeatureConf(filename string) ([]byte, error) {
	if len(filename) == 0 {
		return []byte(firstorder.DEFAULT_FEATURES), nil
	}
	return os.ReadFile(filename)
}

func DepTrain(cmd *commander.Command, args []string) error {
	REQUIRED_FLAGS := []string{"tc", "m"}
	if err := VerifyFlags(cmd, REQUIRED_FLAGS); err != nil {
		return err
	}
	if allOut {
		TrainConfigOut()
	}
	if !VerifyExists(tConll) {
		return fmt.Errorf("train file %s not found", tConll)
	}
	var labels []string
	if len(labelsFile) > 0 {
		labelsConf, err := conf.ReadFile(labelsFile)
		if err != nil {
			return fmt.Errorf("failed reading dependency labels configuration file %s: %w", labelsFile, err)
		}
		labels = labelsConf.Values
	}
	featureConf, err := readFeatureConf(featuresFile)
	if err != nil {
		return fmt.Errorf("failed reading features file %s: %w", featuresFile, err)
	}
	setup, err := firstorder.LoadFeatureConf(featureConf)
	if err != nil {
		return err
	}
	extractor, err := firstorder.NewExtractor(setup)
	if err != nil {
		return err
	}
	if allOut {
		log.Println("Loaded", len(extractor.Templates), "feature templates")
	}

	samples, err := conll.ReadSamplesFile(tConll)
	if err != nil {
		return err
	}
	if allOut {
		log.Println("Read", len(samples), "sentences from", tConll)
	}

	trainConf := firstorder.TrainConfig{
		Algorithm:  firstorder.PERCEPTRON,
		Iterations: Iterations,
		Labeled:    Labeled,
		Labels:     labels,
		Log:        verbose,
	}
	if !verbose && Iterations > 0 {
		uiprogress.Start()
		bar := uiprogress.AddBar(len(samples) * Iterations)
		bar.AppendCompleted()
		bar.PrependElapsed()
		trainConf.Progress = func(iteration, instance int) {
			bar.Incr()
		}
	}
	startTime := time.Now()
	dense, err := firstorder.Train(samples, extractor, trainConf)
	if trainConf.Progress != nil {
		uiprogress.Stop()
	}
	if err != nil {
		return err
	}
	if allOut {
		log.Println("TRAIN Total Time:", time.Since(startTime))
		util.LogMemory()
		log.Println("Writing model to", modelFile)
	}
	return WriteModel(modelFile, NewSerialization(dense, featureConf, Iterations, len(samples)))
}

func DepTrainCmd() *commander.Command {
	cmd := &commander.Command{
		Run:       DepTrain,
		UsageLine: "train <file options> [arguments]",
		Short:     "train a first-order dependency parser",
		Long: `
train a first-order (arc-factored) dependency parser with the averaged perceptron

	$ ./yg-nlp train -tc <conll> -m <model file> [options]

`,
		Flag: *flag.NewFlagSet("train", flag.ExitOnError),
	}
	cmd.Flag.StringVar(&tConll, "tc", "", "Training Conll File")
	cmd.Flag.StringVar(&modelFile, "m", "", "Output Model File")
	cmd.Flag.IntVar(&Iterations, "it", 10, "Number of Perceptron Iterations")
	cmd.Flag.BoolVar(&Labeled, "labeled", false, "Train a labeled model")
	cmd.Flag.StringVar(&featuresFile, "f", "", "Features Configuration File (default built-in setup)")
	cmd.Flag.StringVar(&labelsFile, "l", "", "Dependency Labels Configuration File")
	cmd.Flag.BoolVar(&verbose, "v", false, "Log every training instance")
	return cmd
}
