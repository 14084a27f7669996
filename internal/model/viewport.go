package model

// DefaultZoom shows the whole image; larger values magnify.
const (
	DefaultZoom      = 100.0
	DefaultZoomLimit = 100.0
)

// Viewport is the visible window onto the image stack.
//
// Zoom is a percentage: the visible source region is Width*100/Zoom image
// pixels wide, drawn into ScaledWidth screen pixels. Sx/Sy is the image
// coordinate at the top-left corner of the screen.
type Viewport struct {
	Sx, Sy float64

	Zoom      float64
	ZoomLimit float64

	// Image dimensions in pixels.
	Width, Height int

	// Visible source region in image pixels.
	SWidth, SHeight float64

	// Displayed size in screen pixels.
	ScaledWidth, ScaledHeight float64

	// Cursor position in screen pixels, relative to the top-left corner.
	CursorX, CursorY float64
}

// NewViewport creates a viewport showing the whole image at DefaultZoom.
func NewViewport(width, height int, scaledWidth, scaledHeight float64) *Viewport {
	v := &Viewport{
		Width:        width,
		Height:       height,
		ZoomLimit:    DefaultZoomLimit,
		ScaledWidth:  scaledWidth,
		ScaledHeight: scaledHeight,
	}
	v.SetZoom(DefaultZoom)
	return v
}

// SetZoom sets the zoom factor and recomputes the visible source region.
func (v *Viewport) SetZoom(zoom float64) {
	v.Zoom = zoom
	v.SWidth, v.SHeight = v.SourceSize(zoom)
}

// SourceSize returns the visible source region for a zoom factor.
func (v *Viewport) SourceSize(zoom float64) (float64, float64) {
	return float64(v.Width) * 100 / zoom, float64(v.Height) * 100 / zoom
}

// ImagePoint maps a screen position to image coordinates.
func (v *Viewport) ImagePoint(screenX, screenY float64) (float64, float64) {
	x := v.Sx + screenX/v.ScaledWidth*v.SWidth
	y := v.Sy + screenY/v.ScaledHeight*v.SHeight
	return x, y
}

// ScreenPoint maps image coordinates to a screen position.
func (v *Viewport) ScreenPoint(imageX, imageY float64) (float64, float64) {
	x := (imageX - v.Sx) / v.SWidth * v.ScaledWidth
	y := (imageY - v.Sy) / v.SHeight * v.ScaledHeight
	return x, y
}

// Resize changes the displayed size, keeping offset and zoom.
func (v *Viewport) Resize(scaledWidth, scaledHeight float64) {
	v.ScaledWidth = scaledWidth
	v.ScaledHeight = scaledHeight
}

// SetCursor records the cursor position in screen pixels.
func (v *Viewport) SetCursor(x, y float64) {
	v.CursorX = x
	v.CursorY = y
}
