package vec

import "math"

// Inf and NegInf are sentinel delta components. Buffer.Move treats them as
// "snap to the far end" rather than as offsets.
const (
	Inf    = math.MaxInt
	NegInf = math.MinInt
)

// Vec is an integer (x, y) pair. X is a column, Y is a line index.
type Vec struct {
	X int
	Y int
}

// Zero returns (0, 0).
func Zero() Vec { return Vec{} }

// One returns (1, 1).
func One() Vec { return Vec{X: 1, Y: 1} }

func (v Vec) Add(o Vec) Vec { return Vec{X: v.X + o.X, Y: v.Y + o.Y} }

func (v Vec) Sub(o Vec) Vec { return Vec{X: v.X - o.X, Y: v.Y - o.Y} }

func (v Vec) Mul(o Vec) Vec { return Vec{X: v.X * o.X, Y: v.Y * o.Y} }

// Div divides both components by o.Y. A zero o.Y yields the zero vector.
func (v Vec) Div(o Vec) Vec {
	if o.Y == 0 {
		return Vec{}
	}
	return Vec{X: v.X / o.Y, Y: v.Y / o.Y}
}

// Min returns the component-wise minimum.
func (v Vec) Min(o Vec) Vec { return Vec{X: min(v.X, o.X), Y: min(v.Y, o.Y)} }

// Max returns the component-wise maximum.
func (v Vec) Max(o Vec) Vec { return Vec{X: max(v.X, o.X), Y: max(v.Y, o.Y)} }

func (v Vec) SetX(x int) Vec { return Vec{X: x, Y: v.Y} }

func (v Vec) SetY(y int) Vec { return Vec{X: v.X, Y: y} }

func (v Vec) AddY(dy int) Vec { return Vec{X: v.X, Y: v.Y + dy} }

func (v Vec) SubY(dy int) Vec { return Vec{X: v.X, Y: v.Y - dy} }
