package yolo

import (
	"fmt"
	"strings"

	"github.com/robert008/flutter-yolo-open-kit/internal/family"
)

// identification is the outcome of inspecting a freshly-opened session's
// input/output tensor metadata.
type identification struct {
	fam         family.Family
	inputWidth  int
	inputHeight int
	numClasses  int
}

// identify runs the family-detection algorithm against a session's
// reported input/output shapes: an input tensor whose name contains
// "scale" marks family C; otherwise the output feature count decides
// between family A (has objectness) and family B.
func identify(info *sessionInfo) (identification, error) {
	ident := identification{
		fam:         family.A,
		inputWidth:  defaultInputSize,
		inputHeight: defaultInputSize,
	}

	hasScaleFactorInput := false
	for _, in := range info.inputs {
		if strings.Contains(strings.ToLower(in.name), "scale") {
			hasScaleFactorInput = true
			continue
		}
		if len(in.shape) == 4 {
			if in.shape[2] > 0 {
				ident.inputHeight = int(in.shape[2])
			}
			if in.shape[3] > 0 {
				ident.inputWidth = int(in.shape[3])
			}
		}
	}

	if hasScaleFactorInput {
		ident.fam = family.C
		ident.numClasses = 80
		return ident, nil
	}

	for _, out := range info.outputs {
		if len(out.shape) < 2 {
			continue
		}
		dim1 := out.shape[len(out.shape)-2]
		dim2 := out.shape[len(out.shape)-1]

		switch {
		case dim1 == 6 || dim2 == 6:
			ident.fam = family.C
			ident.numClasses = 80
		case dim1 == 85 || dim2 == 85:
			ident.fam = family.A
			ident.numClasses = 80
		case dim1 == 84 || dim2 == 84:
			ident.fam = family.B
			ident.numClasses = 80
		default:
			features := dim1
			if dim2 < features {
				features = dim2
			}
			if features > 5 {
				ident.fam = family.A
				ident.numClasses = int(features - 5)
			} else if features > 0 {
				ident.fam = family.B
				ident.numClasses = int(features - 4)
			}
		}
		break
	}

	// Only family A's decode uses a precomputed grid keyed on a single
	// stride-per-cell layout, which assumes a square input; family B has
	// no grid and family C takes a direct resize, so neither needs this
	// constraint.
	if ident.fam == family.A && ident.inputWidth != ident.inputHeight {
		return identification{}, fmt.Errorf(
			"non-square family A input (%dx%d) is not supported: model graphs must report a square NCHW input",
			ident.inputWidth, ident.inputHeight,
		)
	}

	return ident, nil
}
