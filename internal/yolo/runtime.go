package yolo

import (
	"fmt"
	"runtime"
	"strings"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/robert008/flutter-yolo-open-kit/internal/yolog"
)

const (
	intraOpThreads = 4
	interOpThreads = 2
)

// tensorInfo mirrors one entry of a graph's reported input or output
// metadata.
type tensorInfo struct {
	name  string
	shape []int64
}

// sessionInfo is everything identify needs, plus the names a run call
// must pass back in (onnxruntime_go binds tensors by name order).
type sessionInfo struct {
	inputs      []tensorInfo
	outputs     []tensorInfo
	inputNames  []string
	outputNames []string
}

// runtimeSession owns the live ONNX Runtime session and the bookkeeping
// needed to build per-call tensors.
type runtimeSession struct {
	session *ort.DynamicAdvancedSession
}

func sharedLibraryPath() string {
	switch runtime.GOOS {
	case "windows":
		return "./third_party/onnxruntime.dll"
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.dylib"
		}
		return "./third_party/onnxruntime.dylib"
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so"
		}
		return "./third_party/onnxruntime.so"
	default:
		return "./third_party/onnxruntime.so"
	}
}

// openRuntimeSession loads modelPath: it reads the graph's input/output
// metadata (names and shapes, which identify later uses to decide the
// family) and then builds the session from it.
func openRuntimeSession(modelPath string) (*runtimeSession, *sessionInfo, error) {
	ort.SetSharedLibraryPath(sharedLibraryPath())
	if err := ensureEnvironment(); err != nil {
		return nil, nil, fmt.Errorf("initialize onnxruntime environment: %w", err)
	}

	rawInputs, rawOutputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, nil, fmt.Errorf("read model metadata: %w", err)
	}

	info := &sessionInfo{}
	for _, in := range rawInputs {
		info.inputs = append(info.inputs, tensorInfo{name: in.Name, shape: []int64(in.Dimensions)})
		info.inputNames = append(info.inputNames, in.Name)
	}
	for _, out := range rawOutputs {
		info.outputs = append(info.outputs, tensorInfo{name: out.Name, shape: []int64(out.Dimensions)})
		info.outputNames = append(info.outputNames, out.Name)
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, nil, fmt.Errorf("create session options: %w", err)
	}
	defer options.Destroy()

	_ = options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableAll)
	_ = options.SetIntraOpNumThreads(intraOpThreads)
	_ = options.SetInterOpNumThreads(interOpThreads)

	// Accelerator enable failure is recoverable and silent: CPU fallback
	// always succeeds if the model itself loads.
	if err := appendPlatformExecutionProvider(options); err != nil {
		yolog.S().Debugw("hardware execution provider unavailable, falling back to CPU", "error", err)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath, info.inputNames, info.outputNames, options)
	if err != nil {
		return nil, nil, fmt.Errorf("create session: %w", err)
	}

	return &runtimeSession{session: session}, info, nil
}

// Destroy releases the underlying session. Safe on a zero-value receiver.
func (r *runtimeSession) Destroy() {
	if r == nil || r.session == nil {
		return
	}
	r.session.Destroy()
}

// imageScaleInputIndices decides which input slot carries the image
// tensor and which carries the auxiliary scale_factor tensor for family
// C graphs, by matching tensor names against "image"/"scale". Absent a
// name match, it defaults to image_idx=1, scale_idx=0 — the common
// PP-YOLOE export orders its graph inputs [scale_factor, image].
func imageScaleInputIndices(names []string) (imageIdx, scaleIdx int) {
	imageIdx, scaleIdx = 1, 0
	for i, n := range names {
		lower := strings.ToLower(n)
		switch {
		case strings.Contains(lower, "scale"):
			scaleIdx = i
		case strings.Contains(lower, "image"):
			imageIdx = i
		}
	}
	return imageIdx, scaleIdx
}

// run executes one inference call, returning the first output's flat
// data and its actual (possibly runtime-determined) shape. Both the
// image tensor and, for family C, the auxiliary scale_factor tensor are
// scoped to this single call and destroyed before it returns.
func (r *runtimeSession) run(info *sessionInfo, tensor []float32, inputWidth, inputHeight int, scaleFactorH, scaleFactorW float32) ([]float32, []int64, error) {
	imageTensor, err := ort.NewTensor(ort.NewShape(1, 3, int64(inputHeight), int64(inputWidth)), tensor)
	if err != nil {
		return nil, nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer imageTensor.Destroy()

	inputs := []ort.Value{imageTensor}

	if len(info.inputNames) >= 2 {
		scaleTensor, err := ort.NewTensor(ort.NewShape(1, 2), []float32{scaleFactorH, scaleFactorW})
		if err != nil {
			return nil, nil, fmt.Errorf("build scale_factor tensor: %w", err)
		}
		defer scaleTensor.Destroy()

		imageIdx, scaleIdx := imageScaleInputIndices(info.inputNames)
		ordered := make([]ort.Value, len(info.inputNames))
		ordered[imageIdx] = imageTensor
		ordered[scaleIdx] = scaleTensor
		inputs = ordered
	}

	outputs := make([]ort.Value, len(info.outputNames))
	if err := r.session.Run(inputs, outputs); err != nil {
		return nil, nil, fmt.Errorf("run inference: %w", err)
	}

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("unexpected output tensor type")
	}
	defer out.Destroy()

	data := append([]float32(nil), out.GetData()...)
	shape := append([]int64(nil), []int64(out.GetShape())...)
	return data, shape, nil
}
