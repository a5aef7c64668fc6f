package world

import (
	"testing"

	"go.viam.com/test"
)

func TestNewVisibleWindowReferenceViewport(t *testing.T) {
	// (1280/64)/2+2 = 12 columns, (720/64)/2+2 = 7.625 -> 7 rows
	w := NewVisibleWindow(1280, 720, 64, 2)
	test.That(t, w, test.ShouldResemble, VisibleWindow{MinCol: -12, MaxCol: 12, MinRow: -7, MaxRow: 7})
	test.That(t, w.MaxCol-w.MinCol, test.ShouldEqual, 1280/64+4)
	test.That(t, w.Cols(), test.ShouldEqual, 25)
	test.That(t, w.Rows(), test.ShouldEqual, 15)
	test.That(t, w.Area(), test.ShouldEqual, 375)
}

func TestVisibleWindowShift(t *testing.T) {
	w := NewVisibleWindow(1280, 720, 64, 2)
	start := w

	for i := 0; i < 9; i++ {
		test.That(t, w.Shift(AxisCol, -1), test.ShouldBeNil)
	}
	test.That(t, w.MinCol, test.ShouldEqual, start.MinCol-9)
	test.That(t, w.MaxCol, test.ShouldEqual, start.MaxCol-9)
	test.That(t, w.MinRow, test.ShouldEqual, start.MinRow)
	test.That(t, w.MaxRow, test.ShouldEqual, start.MaxRow)

	test.That(t, w.Shift(AxisRow, 1), test.ShouldBeNil)
	test.That(t, w.MinRow, test.ShouldEqual, start.MinRow+1)
	test.That(t, w.Cols(), test.ShouldEqual, start.Cols())
	test.That(t, w.Rows(), test.ShouldEqual, start.Rows())
}

func TestVisibleWindowShiftRejectsLargeDelta(t *testing.T) {
	w := VisibleWindow{}
	for _, delta := range []int{0, 2, -2} {
		err := w.Shift(AxisCol, delta)
		test.That(t, err, test.ShouldEqual, ErrInvalidShift)
	}
	test.That(t, w, test.ShouldResemble, VisibleWindow{})
}

func TestVisibleWindowShifted(t *testing.T) {
	w := VisibleWindow{MinCol: 0, MaxCol: 2, MinRow: 0, MaxRow: 2}
	test.That(t, w.Shifted(Up), test.ShouldResemble, VisibleWindow{MinCol: 0, MaxCol: 2, MinRow: -1, MaxRow: 1})
	test.That(t, w.Shifted(Down), test.ShouldResemble, VisibleWindow{MinCol: 0, MaxCol: 2, MinRow: 1, MaxRow: 3})
	test.That(t, w.Shifted(Left), test.ShouldResemble, VisibleWindow{MinCol: -1, MaxCol: 1, MinRow: 0, MaxRow: 2})
	test.That(t, w.Shifted(Right), test.ShouldResemble, VisibleWindow{MinCol: 1, MaxCol: 3, MinRow: 0, MaxRow: 2})
	// the receiver is a copy
	test.That(t, w.MinCol, test.ShouldEqual, 0)
}

func TestVisibleWindowExpandContains(t *testing.T) {
	w := VisibleWindow{MinCol: -1, MaxCol: 1, MinRow: -1, MaxRow: 1}
	e := w.Expand(2)
	test.That(t, e, test.ShouldResemble, VisibleWindow{MinCol: -3, MaxCol: 3, MinRow: -3, MaxRow: 3})
	test.That(t, e.Contains(ChunkCoord{Col: 3, Row: -3}), test.ShouldBeTrue)
	test.That(t, e.Contains(ChunkCoord{Col: 4, Row: 0}), test.ShouldBeFalse)

	rows := w.ExpandAxis(AxisRow, 5)
	test.That(t, rows, test.ShouldResemble, VisibleWindow{MinCol: -1, MaxCol: 1, MinRow: -6, MaxRow: 6})
}

func TestDirectionAxisSign(t *testing.T) {
	for _, d := range []Direction{Up, Down, Left, Right} {
		test.That(t, DirectionOf(d.Axis(), d.Sign()), test.ShouldEqual, d)

		text, err := d.MarshalText()
		test.That(t, err, test.ShouldBeNil)
		var back Direction
		test.That(t, back.UnmarshalText(text), test.ShouldBeNil)
		test.That(t, back, test.ShouldEqual, d)
	}
	test.That(t, Up.Axis(), test.ShouldEqual, AxisRow)
	test.That(t, Left.Axis(), test.ShouldEqual, AxisCol)
	test.That(t, AxisRow.Other(), test.ShouldEqual, AxisCol)

	var d Direction
	err := d.UnmarshalText([]byte("sideways"))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldEqual, `unknown direction "sideways"`)
}

func TestVisibleWindowTranslated(t *testing.T) {
	w := VisibleWindow{MinCol: -2, MaxCol: 2, MinRow: -1, MaxRow: 1}
	test.That(t, w.Translated(10, -3), test.ShouldResemble, VisibleWindow{MinCol: 8, MaxCol: 12, MinRow: -4, MaxRow: -2})
	test.That(t, w.Translated(0, 0), test.ShouldResemble, w)
}
