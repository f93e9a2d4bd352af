// Command segloss evaluates segmentation losses on a ground-truth and
// prediction pair stored in a JSON tensor file (see tensor.SaveTensors).
//
//	segloss -input pair.json -loss all
//	segloss -input pair.json -loss focal_tversky -alpha 0.6 -gamma 0.75
//	segloss -demo
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/fumitoshi0524/segloss/loss"
	"github.com/fumitoshi0524/segloss/tensor"
)

var (
	inputPath  = flag.String("input", "", "JSON tensor file holding \"gt\" and \"pred\"")
	gtName     = flag.String("gt", "gt", "name of the ground-truth tensor in the input file")
	predName   = flag.String("pred", "pred", "name of the prediction tensor in the input file")
	lossName   = flag.String("loss", "all", "loss to evaluate, or \"all\"")
	activation = flag.String("activation", "none", "activation applied to pred first: none, sigmoid, softmax")
	alpha      = flag.Float64("alpha", loss.DefaultAlpha, "Tversky false-negative weight")
	gamma      = flag.Float64("gamma", loss.DefaultGamma, "focal Tversky exponent")
	smooth     = flag.Float64("smooth", loss.DefaultSmooth, "smoothing term added to ratios")
	threshold  = flag.Float64("threshold", 0.5, "mask threshold for the hard Dice/Jaccard scores")
	demo       = flag.Bool("demo", false, "run the constant-volume surface loss demonstration and exit")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("segloss: ")

	if *demo {
		if err := runDemo(); err != nil {
			log.Fatalf("demo: %v", err)
		}
		return
	}
	if *inputPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	opts := loss.DefaultOptions()
	opts.Alpha = *alpha
	opts.Gamma = *gamma
	opts.Smooth = *smooth

	gt, pred, err := loadPair(*inputPath, *gtName, *predName)
	if err != nil {
		log.Fatalf("load: %v", err)
	}
	pred, err = activate(pred, *activation)
	if err != nil {
		log.Fatalf("activation: %v", err)
	}
	kinds, err := selectLosses(*lossName, gt.Rank())
	if err != nil {
		log.Fatalf("%v", err)
	}
	for _, kind := range kinds {
		fn, err := loss.New(kind, gt.Rank(), opts)
		if err != nil {
			log.Fatalf("%v", err)
		}
		value, err := fn(gt, pred)
		if err != nil {
			log.Fatalf("%s: %v", kind, err)
		}
		fmt.Printf("%-24s %.6f\n", kind, value.Value())
	}

	diceScore, err := loss.DiceScore(gt, pred, *threshold)
	if err != nil {
		log.Fatalf("dice score: %v", err)
	}
	jaccard, err := loss.JaccardScore(gt, pred, *threshold)
	if err != nil {
		log.Fatalf("jaccard score: %v", err)
	}
	fmt.Printf("%-24s %.6f\n", "dice_score", diceScore)
	fmt.Printf("%-24s %.6f\n", "jaccard_score", jaccard)
}

func loadPair(path, gtKey, predKey string) (*tensor.Tensor, *tensor.Tensor, error) {
	set, err := tensor.LoadTensors(path)
	if err != nil {
		return nil, nil, err
	}
	pair, err := tensor.Lookup(set, gtKey, predKey)
	if err != nil {
		return nil, nil, err
	}
	return pair[0], pair[1], nil
}

func activate(pred *tensor.Tensor, name string) (*tensor.Tensor, error) {
	switch name {
	case "", "none":
		return pred, nil
	case "sigmoid":
		return tensor.Sigmoid(pred), nil
	case "softmax":
		return tensor.Softmax(pred), nil
	default:
		return nil, errors.Errorf("unknown activation %q", name)
	}
}

func selectLosses(name string, rank int) ([]loss.Type, error) {
	if name == "all" {
		var kinds []loss.Type
		for _, kind := range loss.Types() {
			if loss.Supports(kind, rank) {
				kinds = append(kinds, kind)
			}
		}
		return kinds, nil
	}
	kind, err := loss.ParseType(name)
	if err != nil {
		return nil, err
	}
	if !loss.Supports(kind, rank) {
		return nil, errors.Errorf("loss %s does not support rank %d inputs", kind, rank)
	}
	return []loss.Type{kind}, nil
}

// runDemo evaluates Surface3D on a constant distance map of 5 against a
// constant prediction of 1 over a 3×32×32×32×1 volume.
func runDemo() error {
	gt := tensor.Full(5, 3, 32, 32, 32, 1)
	pred := tensor.Full(1, 3, 32, 32, 32, 1)
	value, err := loss.Surface3D(gt, pred)
	if err != nil {
		return err
	}
	fmt.Printf("surface_3d %.1f\n", value.Value())
	return nil
}
