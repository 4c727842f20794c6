package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestCollideShapes(t *testing.T) {
	ball := func(pos mgl64.Vec3, r float64) *RigidBody {
		return NewRigidBody(BodyTypeDynamic, &Sphere{Radius: r}, nil, pos, 1)
	}
	static := func(s Shape, pos mgl64.Vec3) *RigidBody {
		return NewRigidBody(BodyTypeStatic, s, nil, pos, 0)
	}
	ground := static(&Plane{Normal: mgl64.Vec3{0, 1, 0}}, mgl64.Vec3{})
	box := static(&Box{HalfExtents: mgl64.Vec3{1, 1, 1}}, mgl64.Vec3{0, 0, 0})

	tests := []struct {
		name   string
		a, b   *RigidBody
		hit    bool
		depth  float64
		normal mgl64.Vec3
	}{
		{"spheres overlapping", ball(mgl64.Vec3{}, 0.5), ball(mgl64.Vec3{0.8, 0, 0}, 0.5), true, 0.2, mgl64.Vec3{1, 0, 0}},
		{"spheres apart", ball(mgl64.Vec3{}, 0.5), ball(mgl64.Vec3{1.2, 0, 0}, 0.5), false, 0, mgl64.Vec3{}},
		{"sphere on plane", ball(mgl64.Vec3{0, 0.4, 0}, 0.5), ground, true, 0.1, mgl64.Vec3{0, -1, 0}},
		{"plane first", ground, ball(mgl64.Vec3{0, 0.4, 0}, 0.5), true, 0.1, mgl64.Vec3{0, -1, 0}},
		{"sphere above plane", ball(mgl64.Vec3{0, 2, 0}, 0.5), ground, false, 0, mgl64.Vec3{}},
		{"sphere at box face", ball(mgl64.Vec3{1.3, 0, 0}, 0.5), box, true, 0.2, mgl64.Vec3{-1, 0, 0}},
		{"sphere inside box", ball(mgl64.Vec3{0.9, 0, 0}, 0.5), box, true, 0.6, mgl64.Vec3{-1, 0, 0}},
		{"sphere clear of box", ball(mgl64.Vec3{2, 0, 0}, 0.5), box, false, 0, mgl64.Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := collide(tt.a, tt.b)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v", ok, tt.hit)
			}
			if !ok {
				return
			}
			if c.A.IsStatic() {
				t.Fatal("contact A must be the dynamic body")
			}
			if math.Abs(c.Depth-tt.depth) > 1e-9 {
				t.Fatalf("depth = %f, want %f", c.Depth, tt.depth)
			}
			if !c.Normal.ApproxEqual(tt.normal) {
				t.Fatalf("normal = %v, want %v", c.Normal, tt.normal)
			}
		})
	}
}
