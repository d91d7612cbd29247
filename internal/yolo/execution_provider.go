package yolo

import (
	"fmt"
	"runtime"

	ort "github.com/yalue/onnxruntime_go"
)

// appendPlatformExecutionProvider attempts to enable the platform's
// native accelerator, mirroring the C++ core's NNAPI-on-Android /
// Core ML-on-Apple attempt. Returning an error here never aborts init;
// the caller logs it at debug level and proceeds on CPU.
func appendPlatformExecutionProvider(options *ort.SessionOptions) error {
	switch runtime.GOOS {
	case "darwin":
		return options.AppendExecutionProviderCoreML(0)
	case "windows":
		return options.AppendExecutionProviderDirectML(0)
	case "linux":
		return options.AppendExecutionProviderCUDA(&ort.CUDAProviderOptions{})
	default:
		return fmt.Errorf("no native execution provider for %s", runtime.GOOS)
	}
}
