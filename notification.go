package pathview

import "fmt"

// Notification names a property change or motion event of a PathView.
// Notifications are delivered after the state they describe is committed.
type Notification int

const (
	OffsetChanged Notification = iota
	CurrentIndexChanged
	CurrentItemChanged
	CountChanged
	ModelChanged
	PathChanged
	PathItemCountChanged
	CacheItemCountChanged
	PreferredHighlightBeginChanged
	PreferredHighlightEndChanged
	HighlightRangeModeChanged
	SnapModeChanged
	MovementDirectionChanged
	DragMarginChanged
	FlickDecelerationChanged
	MaximumFlickVelocityChanged
	HighlightMoveDurationChanged
	InteractiveChanged
	HighlightChanged
	HighlightItemChanged
	MovingChanged
	FlickingChanged
	DraggingChanged
	MovementStarted
	MovementEnded
	FlickStarted
	FlickEnded
	DragStarted
	DragEnded
)

var notificationNames = [...]string{
	OffsetChanged:                  "offsetChanged",
	CurrentIndexChanged:            "currentIndexChanged",
	CurrentItemChanged:             "currentItemChanged",
	CountChanged:                   "countChanged",
	ModelChanged:                   "modelChanged",
	PathChanged:                    "pathChanged",
	PathItemCountChanged:           "pathItemCountChanged",
	CacheItemCountChanged:          "cacheItemCountChanged",
	PreferredHighlightBeginChanged: "preferredHighlightBeginChanged",
	PreferredHighlightEndChanged:   "preferredHighlightEndChanged",
	HighlightRangeModeChanged:      "highlightRangeModeChanged",
	SnapModeChanged:                "snapModeChanged",
	MovementDirectionChanged:       "movementDirectionChanged",
	DragMarginChanged:              "dragMarginChanged",
	FlickDecelerationChanged:       "flickDecelerationChanged",
	MaximumFlickVelocityChanged:    "maximumFlickVelocityChanged",
	HighlightMoveDurationChanged:   "highlightMoveDurationChanged",
	InteractiveChanged:             "interactiveChanged",
	HighlightChanged:               "highlightChanged",
	HighlightItemChanged:           "highlightItemChanged",
	MovingChanged:                  "movingChanged",
	FlickingChanged:                "flickingChanged",
	DraggingChanged:                "draggingChanged",
	MovementStarted:                "movementStarted",
	MovementEnded:                  "movementEnded",
	FlickStarted:                   "flickStarted",
	FlickEnded:                     "flickEnded",
	DragStarted:                    "dragStarted",
	DragEnded:                      "dragEnded",
}

func (n Notification) String() string {
	if n >= 0 && int(n) < len(notificationNames) {
		return notificationNames[n]
	}
	return fmt.Sprintf("Notification(%d)", int(n))
}
