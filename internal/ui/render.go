package ui

import (
	"bytes"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"iv/internal/viewport"
)

// Common colors used in rendering
var (
	colorWhite     = color.RGBA{255, 255, 255, 255}
	colorLightGray = color.RGBA{192, 192, 192, 255}
	colorSelection = color.RGBA{255, 255, 255, 230}
	colorHandle    = color.RGBA{255, 255, 255, 255}
	colorHandleRim = color.RGBA{40, 40, 40, 255}

	// Background colors for semi-transparent overlays
	bgColorLight = color.RGBA{0, 0, 0, 128}
	bgColorDark  = color.RGBA{0, 0, 0, 200}

	navColorIdle    = color.RGBA{30, 30, 30, 110}
	navColorHover   = color.RGBA{50, 50, 50, 200}
	navColorPressed = color.RGBA{80, 80, 80, 230}
)

// renderer draws the viewer's screen: the image mapped through the viewport
// rectangles, the selection overlay, nav buttons and text overlays.
type renderer struct {
	fontSource *text.GoTextFaceSource
	infoFont   *text.GoTextFace
	msgFont    *text.GoTextFace
}

func newRenderer() *renderer {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatal(err)
	}

	return &renderer{
		fontSource: s,
		infoFont:   &text.GoTextFace{Source: s, Size: 16},
		msgFont:    &text.GoTextFace{Source: s, Size: 20},
	}
}

// drawImage maps the frame through the viewport's source/destination
// rectangles: dest = (src - srcOrigin) * zoom + destOrigin.
func (r *renderer) drawImage(screen *ebiten.Image, img *ebiten.Image, vp *viewport.Viewport) {
	if img == nil || !vp.HasImage() {
		return
	}

	src, dest := vp.Rects()
	if dest.Empty() {
		return
	}
	zoom := vp.ZoomFactor()

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(dest.X-src.X*zoom, dest.Y-src.Y*zoom)

	screen.DrawImage(img, op)
}

// drawSelection dims everything outside the selection and draws the border
// plus the resize handles.
func (r *renderer) drawSelection(screen *ebiten.Image, vp *viewport.Viewport) {
	sel := vp.ClientSelection()
	if sel.Empty() {
		return
	}
	dest := vp.DestRect()

	// Dim the image outside the selection
	DrawFilledRect(screen, dest.X, dest.Y, dest.W, sel.Y-dest.Y, bgColorLight)
	DrawFilledRect(screen, dest.X, sel.Bottom(), dest.W, dest.Bottom()-sel.Bottom(), bgColorLight)
	DrawFilledRect(screen, dest.X, sel.Y, sel.X-dest.X, sel.H, bgColorLight)
	DrawFilledRect(screen, sel.Right(), sel.Y, dest.Right()-sel.Right(), sel.H, bgColorLight)

	StrokeRect(screen, sel.X, sel.Y, sel.W, sel.H, 1, colorSelection)

	for _, h := range vp.SelectionHandles() {
		ind := h.Indicator
		DrawFilledRect(screen, ind.X, ind.Y, ind.W, ind.H, colorHandle)
		StrokeRect(screen, ind.X, ind.Y, ind.W, ind.H, 1, colorHandleRim)
	}
}

// drawNavButtons draws the hover navigation arrows. Idle buttons stay
// invisible; they fade in on hover and darken while pressed.
func (r *renderer) drawNavButtons(screen *ebiten.Image, vp *viewport.Viewport) {
	left, right, visible := vp.NavButtons()
	if !visible {
		return
	}

	r.drawNavButton(screen, left, true)
	r.drawNavButton(screen, right, false)
}

func (r *renderer) drawNavButton(screen *ebiten.Image, b viewport.NavButton, pointsLeft bool) {
	if !b.Hovered && !b.Pressed {
		return
	}

	fill := navColorHover
	if b.Pressed {
		fill = navColorPressed
	}
	cx, cy := float32(b.Center.X), float32(b.Center.Y)
	vector.DrawFilledCircle(screen, cx, cy, float32(b.Radius), fill, true)

	// Chevron
	arm := float32(b.Radius) * 0.4
	dir := float32(1)
	if pointsLeft {
		dir = -1
	}
	tipX := cx + dir*arm/2
	baseX := cx - dir*arm/2
	vector.StrokeLine(screen, baseX, cy-arm, tipX, cy, 3, colorWhite, true)
	vector.StrokeLine(screen, baseX, cy+arm, tipX, cy, 3, colorWhite, true)
}

// drawInfo draws the status line in the bottom right corner.
func (r *renderer) drawInfo(screen *ebiten.Image, info string) {
	if info == "" {
		return
	}

	textWidth, textHeight := text.Measure(info, r.infoFont, 0)

	padding := 10.0
	textX := float64(screen.Bounds().Dx()) - textWidth - padding
	textY := float64(screen.Bounds().Dy()) - textHeight - padding

	bgPadding := 5.0
	DrawFilledRect(screen, textX-bgPadding, textY-bgPadding,
		textWidth+bgPadding*2, textHeight+bgPadding*2, bgColorLight)

	DrawText(screen, info, r.infoFont, textX, textY, colorWhite)
}

// drawOverlayMessage draws a transient centered message box.
func (r *renderer) drawOverlayMessage(screen *ebiten.Image, message string) {
	textWidth, textHeight := text.Measure(message, r.msgFont, 0)

	padding := 20.0
	boxWidth := textWidth + padding*2
	boxHeight := textHeight + padding*2
	boxX := (float64(screen.Bounds().Dx()) - boxWidth) / 2
	boxY := (float64(screen.Bounds().Dy()) - boxHeight) / 2

	DrawFilledRect(screen, boxX, boxY, boxWidth, boxHeight, bgColorDark)
	DrawText(screen, message, r.msgFont, boxX+padding, boxY+padding, colorWhite)
}
