// Package yolo is the detector core: it owns the ONNX Runtime session and
// orchestrates ingress, preprocessing, inference, decoding and NMS behind
// a small state machine.
package yolo

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/robert008/flutter-yolo-open-kit/internal/classnames"
	"github.com/robert008/flutter-yolo-open-kit/internal/decode"
	"github.com/robert008/flutter-yolo-open-kit/internal/family"
	"github.com/robert008/flutter-yolo-open-kit/internal/yolog"
)

const defaultInputSize = 640

// DetectorState is the single-threaded-reentrant detector: one session,
// one environment, one class-name vocabulary, one call at a
// time. Concurrent calls from multiple goroutines are serialized by mu,
// which mirrors the native contract that callers must not overlap calls.
type DetectorState struct {
	mu sync.Mutex

	initialized bool
	inputWidth  int
	inputHeight int
	numClasses  int
	classNames  []string
	fam         family.Family

	inputNames  []string
	outputNames []string

	grid []decode.GridCell

	runtime *runtimeSession
}

// New returns an uninitialized detector with the default class
// vocabulary. Calls to Detect* before Init return NOT_INITIALIZED.
func New() *DetectorState {
	return &DetectorState{
		inputWidth:  defaultInputSize,
		inputHeight: defaultInputSize,
		fam:         family.A,
		classNames:  classnames.Default,
	}
}

// Init loads a model from modelPath, releasing any previously loaded
// model first. It identifies the model family from the graph's
// input/output tensor metadata and precomputes
// whatever family A's grid decode needs.
func (d *DetectorState) Init(modelPath string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.releaseLocked()

	rt, info, err := openRuntimeSession(modelPath)
	if err != nil {
		yolog.S().Errorw("model load failed", "path", modelPath, "error", err)
		return fmt.Errorf("init: %w", err)
	}

	ident, err := identify(info)
	if err != nil {
		rt.Destroy()
		yolog.S().Errorw("model identification failed", "path", modelPath, "error", err)
		return fmt.Errorf("init: %w", err)
	}

	d.runtime = rt
	d.inputWidth = ident.inputWidth
	d.inputHeight = ident.inputHeight
	d.numClasses = ident.numClasses
	d.fam = ident.fam
	d.inputNames = info.inputNames
	d.outputNames = info.outputNames
	if d.fam == family.A {
		d.grid = decode.BuildGrid(d.inputWidth)
	} else {
		d.grid = nil
	}
	// When the graph has the 80 COCO classes and the current vocabulary
	// has a different length (e.g. one set by SetClassNames before Init),
	// the default COCO list is restored; otherwise the current vocabulary
	// is kept.
	if len(d.classNames) != d.numClasses && d.numClasses == len(classnames.Default) {
		d.classNames = classnames.Default
	}
	d.initialized = true

	yolog.S().Infow("detector initialized",
		"path", modelPath,
		"family", d.fam.String(),
		"input_width", d.inputWidth,
		"input_height", d.inputHeight,
		"num_classes", d.numClasses,
	)
	return nil
}

// IsInitialized reports whether a model is currently loaded.
func (d *DetectorState) IsInitialized() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.initialized
}

// SetClassNames replaces the class-name vocabulary used to label future
// detections, and updates num_classes to match the new vocabulary's
// length.
func (d *DetectorState) SetClassNames(names []string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(names) == 0 {
		return
	}
	cp := make([]string, len(names))
	copy(cp, names)
	d.classNames = cp
	d.numClasses = len(cp)
}

// Release tears down the session and returns the detector to its
// uninitialized state. Safe to call multiple times.
func (d *DetectorState) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.releaseLocked()
}

func (d *DetectorState) releaseLocked() {
	if d.runtime != nil {
		d.runtime.Destroy()
		d.runtime = nil
	}
	d.initialized = false
	d.inputWidth = defaultInputSize
	d.inputHeight = defaultInputSize
	d.numClasses = 0
	d.fam = family.A
	d.grid = nil
	d.inputNames = nil
	d.outputNames = nil
}

// ortEnvironmentOnce guards the process-wide ONNX Runtime environment,
// which onnxruntime_go requires to be initialized exactly once.
var ortEnvironmentOnce sync.Once
var ortEnvironmentErr error

func ensureEnvironment() error {
	ortEnvironmentOnce.Do(func() {
		ortEnvironmentErr = ort.InitializeEnvironment()
	})
	return ortEnvironmentErr
}
