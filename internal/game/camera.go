package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Camera orbits a target point at a fixed distance and pitch.
type Camera struct {
	Target   mgl64.Vec3
	Yaw      float64 // radians around +Y; 0 looks down -Z
	Pitch    float64 // radians above the horizon
	Distance float64
	Aspect   float64

	// Screen shake.
	ShakeX, ShakeY float64 // current offset in world units
	ShakeTimer     float64 // remaining shake time
	ShakeIntensity float64 // max offset magnitude
}

// NewCamera places the eye at (0, CameraEyeY, CameraEyeZ) looking at (0, CameraLookY, 0).
func NewCamera(aspect float64) *Camera {
	dy := CameraEyeY - CameraLookY
	dz := CameraEyeZ
	if aspect <= 0 {
		aspect = float64(WindowWidth) / float64(WindowHeight)
	}
	return &Camera{
		Target:   mgl64.Vec3{0, CameraLookY, 0},
		Pitch:    math.Atan2(dy, dz),
		Distance: math.Hypot(dy, dz),
		Aspect:   aspect,
	}
}

// Eye returns the camera position with shake applied.
func (c *Camera) Eye() mgl64.Vec3 {
	cp := math.Cos(c.Pitch)
	return mgl64.Vec3{
		c.Target.X() + math.Sin(c.Yaw)*cp*c.Distance + c.ShakeX,
		c.Target.Y() + math.Sin(c.Pitch)*c.Distance + c.ShakeY,
		c.Target.Z() + math.Cos(c.Yaw)*cp*c.Distance,
	}
}

// Orbit rotates the eye around the target.
func (c *Camera) Orbit(dir, dt float64) {
	c.Yaw = math.Mod(c.Yaw+dir*OrbitRate*dt, 2*math.Pi)
}

func (c *Camera) SetAspect(w, h int) {
	if w > 0 && h > 0 {
		c.Aspect = float64(w) / float64(h)
	}
}

func (c *Camera) View() mgl32.Mat4 {
	e := c.Eye()
	t := c.Target
	return mgl32.LookAtV(
		mgl32.Vec3{float32(e.X()), float32(e.Y()), float32(e.Z())},
		mgl32.Vec3{float32(t.X()), float32(t.Y()), float32(t.Z())},
		mgl32.Vec3{0, 1, 0},
	)
}

func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(CameraFOV), float32(c.Aspect), CameraNear, CameraFar)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Project maps a world point to normalized device coordinates. ok is false
// for points behind the eye.
func (c *Camera) Project(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	vp := c.ViewProjection()
	v := vp.Mul4x1(mgl32.Vec4{float32(p.X()), float32(p.Y()), float32(p.Z()), 1})
	if v.W() <= 1e-6 {
		return mgl64.Vec3{}, false
	}
	return mgl64.Vec3{float64(v.X() / v.W()), float64(v.Y() / v.W()), float64(v.Z() / v.W())}, true
}

// ProjectedRadius approximates the NDC-space vertical radius of a sphere at p.
func (c *Camera) ProjectedRadius(p mgl64.Vec3, radius float64) float64 {
	d := p.Sub(c.Eye()).Len()
	if d <= radius {
		return 1
	}
	half := mgl64.DegToRad(CameraFOV) / 2
	return math.Asin(radius/d) / half
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float64) {
	if intensity > c.ShakeIntensity {
		c.ShakeIntensity = intensity
	}
	if duration > c.ShakeTimer {
		c.ShakeTimer = duration
	}
}

// UpdateShake decays shake and computes random offsets.
func (c *Camera) UpdateShake(dt float64, seed uint64) {
	if c.ShakeTimer <= 0 {
		c.ShakeX = 0
		c.ShakeY = 0
		c.ShakeIntensity = 0
		return
	}
	c.ShakeTimer -= dt
	if c.ShakeTimer < 0 {
		c.ShakeTimer = 0
	}
	// Decaying intensity.
	t := c.ShakeTimer
	rr := NewRand(seed ^ uint64(t*10000))
	mag := c.ShakeIntensity * (t / (t + 0.08))
	c.ShakeX = rr.RangeF(-mag, mag)
	c.ShakeY = rr.RangeF(-mag, mag)
}
