package game

import (
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"go.viam.com/test"
)

func TestCameraRoundTrip(t *testing.T) {
	c := NewCamera(1280, 720, 2)
	c.X, c.Y = 100, -50

	sx, sy := c.WorldToScreen(100, -50)
	test.That(t, sx, test.ShouldEqual, 640.0)
	test.That(t, sy, test.ShouldEqual, 360.0)

	sx, sy = c.WorldToScreen(132, -50)
	test.That(t, sx, test.ShouldEqual, 704.0)
	test.That(t, sy, test.ShouldEqual, 360.0)

	wx, wy := c.ScreenToWorld(704, 424)
	test.That(t, wx, test.ShouldEqual, 132.0)
	test.That(t, wy, test.ShouldEqual, -18.0)
}

func TestCameraApplyMatchesWorldToScreen(t *testing.T) {
	c := NewCamera(800, 600, 1.5)
	c.X, c.Y = -64, 32

	var geo ebiten.GeoM
	c.Apply(&geo)
	gx, gy := geo.Apply(10, 20)
	sx, sy := c.WorldToScreen(10, 20)
	test.That(t, gx, test.ShouldAlmostEqual, sx)
	test.That(t, gy, test.ShouldAlmostEqual, sy)
}

func TestCameraZoomLimits(t *testing.T) {
	c := NewCamera(1280, 720, 2)
	test.That(t, c.ZoomBy(0.1, 1, 2), test.ShouldBeFalse)
	test.That(t, c.Zoom, test.ShouldEqual, 2.0)

	for i := 0; i < 10; i++ {
		test.That(t, c.ZoomBy(-0.1, 1, 2), test.ShouldBeTrue)
	}
	test.That(t, c.Zoom, test.ShouldAlmostEqual, 1.0)
	test.That(t, c.ZoomBy(-0.1, 1, 2), test.ShouldBeFalse)
}

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	test.That(t, theme.Background, test.ShouldResemble, color.RGBA{R: 102, G: 115, B: 128, A: 255})
	test.That(t, theme.Outline, test.ShouldResemble, color.RGBA{R: 128, G: 140, B: 153, A: 255})
}
