package loss

import (
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/fumitoshi0524/segloss/tensor"
)

// MinDenominator is the smallest denominator magnitude accepted without a
// warning.
const MinDenominator = 1e-300

// NumericInstabilityWarning reports a ratio denominator that is non-finite or
// has underflowed despite smoothing. The loss is still returned.
type NumericInstabilityWarning struct {
	Op    string
	Index int
	Value float64
}

func (w *NumericInstabilityWarning) Error() string {
	return fmt.Sprintf("%s: unstable denominator %g at batch index %d", w.Op, w.Value, w.Index)
}

// WarningHandler receives numeric instability warnings. It may be called
// from several goroutines at once.
type WarningHandler func(w *NumericInstabilityWarning)

var (
	warnMu      sync.RWMutex
	warnHandler WarningHandler = logWarning
)

// SetWarningHandler installs h and returns the previous handler. A nil h
// restores the default, which writes to the standard logger.
func SetWarningHandler(h WarningHandler) WarningHandler {
	if h == nil {
		h = logWarning
	}
	warnMu.Lock()
	defer warnMu.Unlock()
	prev := warnHandler
	warnHandler = h
	return prev
}

func logWarning(w *NumericInstabilityWarning) {
	log.Printf("loss: %v", w)
}

// checkDenominator reports every entry of den that is unsafe to divide by.
func checkDenominator(op string, den *tensor.Tensor) {
	var bad []*NumericInstabilityWarning
	for i, v := range den.Data() {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) < MinDenominator {
			bad = append(bad, &NumericInstabilityWarning{Op: op, Index: i, Value: v})
		}
	}
	if len(bad) == 0 {
		return
	}
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	for _, w := range bad {
		h(w)
	}
}
