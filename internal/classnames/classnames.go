// Package classnames holds the default object-class vocabulary used when
// a detector has not been given an explicit class list.
package classnames

import "strconv"

// Default is the standard 80-entry object-class vocabulary (COCO order).
var Default = []string{
	"person", "bicycle", "car", "motorcycle", "airplane", "bus", "train", "truck", "boat",
	"traffic light", "fire hydrant", "stop sign", "parking meter", "bench", "bird", "cat",
	"dog", "horse", "sheep", "cow", "elephant", "bear", "zebra", "giraffe", "backpack",
	"umbrella", "handbag", "tie", "suitcase", "frisbee", "skis", "snowboard", "sports ball",
	"kite", "baseball bat", "baseball glove", "skateboard", "surfboard", "tennis racket",
	"bottle", "wine glass", "cup", "fork", "knife", "spoon", "bowl", "banana", "apple",
	"sandwich", "orange", "broccoli", "carrot", "hot dog", "pizza", "donut", "cake", "chair",
	"couch", "potted plant", "bed", "dining table", "toilet", "tv", "laptop", "mouse",
	"remote", "keyboard", "cell phone", "microwave", "oven", "toaster", "sink", "refrigerator",
	"book", "clock", "vase", "scissors", "teddy bear", "hair drier", "toothbrush",
}

// NameFor returns the class name for classID, falling back to a
// generated name when the vocabulary doesn't cover it.
func NameFor(names []string, classID int) string {
	if classID >= 0 && classID < len(names) {
		return names[classID]
	}
	return genericName(classID)
}

func genericName(classID int) string {
	return "class_" + strconv.Itoa(classID)
}
