package physics

import (
	"asciidrop/internal/components"
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// body bundles what the impulse solver needs from one side of a contact.
type body struct {
	obj     *engine.GameObject
	rb      *components.Rigidbody // nil for statics
	obb     OBB
	invMass float32
	invI    rl.Vector3 // inverse principal moments along obb.Axes
}

func boxOBB(obj *engine.GameObject, box *components.BoxCollider) OBB {
	return NewOBBFromBox(box.GetCenter(), box.Size, obj.WorldRotation(), obj.WorldScale())
}

func newBody(obj *engine.GameObject, rb *components.Rigidbody, box *components.BoxCollider) body {
	b := body{obj: obj, rb: rb, obb: boxOBB(obj, box)}
	// Sleeping bodies act as immovable until something wakes them
	if rb == nil || rb.IsSleeping {
		return b
	}
	b.invMass = rb.InverseMass()
	if b.invMass == 0 {
		return b
	}
	// Solid box: I = m/12 * (h^2 + d^2) etc, with full sizes
	s := rl.Vector3Scale(b.obb.HalfSize, 2)
	m := rb.Mass / 12
	b.invI = rl.Vector3{
		X: invOrZero(m * (s.Y*s.Y + s.Z*s.Z)),
		Y: invOrZero(m * (s.X*s.X + s.Z*s.Z)),
		Z: invOrZero(m * (s.X*s.X + s.Y*s.Y)),
	}
	return b
}

// applyInvInertia multiplies a world vector by the world inverse inertia tensor.
func (b body) applyInvInertia(v rl.Vector3) rl.Vector3 {
	var out rl.Vector3
	for i, inv := range [3]float32{b.invI.X, b.invI.Y, b.invI.Z} {
		ax := b.obb.Axes[i]
		out = rl.Vector3Add(out, rl.Vector3Scale(ax, rl.Vector3DotProduct(ax, v)*inv))
	}
	return out
}

// angularRad returns the angular velocity in radians per second.
func (b body) angularRad() rl.Vector3 {
	if b.rb == nil {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(b.rb.AngularVelocity, rl.Deg2rad)
}

func (b body) linear() rl.Vector3 {
	if b.rb == nil {
		return rl.Vector3{}
	}
	return b.rb.Velocity
}

// pointVelocity is the velocity of the material point at world offset r.
func (b body) pointVelocity(r rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(b.linear(), rl.Vector3CrossProduct(b.angularRad(), r))
}

// effectiveMass is the inverse of the impulse needed for a unit velocity
// change along n at offset r.
func (b body) effectiveMass(r, n rl.Vector3) float32 {
	if b.invMass == 0 {
		return 0
	}
	rn := rl.Vector3CrossProduct(r, n)
	return b.invMass + rl.Vector3DotProduct(n, rl.Vector3CrossProduct(b.applyInvInertia(rn), r))
}

func (b body) applyImpulse(r, impulse rl.Vector3) {
	if b.invMass == 0 {
		return
	}
	b.rb.Velocity = rl.Vector3Add(b.rb.Velocity, rl.Vector3Scale(impulse, b.invMass))
	dw := b.applyInvInertia(rl.Vector3CrossProduct(r, impulse))
	b.rb.AngularVelocity = rl.Vector3Add(b.rb.AngularVelocity, rl.Vector3Scale(dw, rl.Rad2deg))
}

// solveContact applies restitution and Coulomb friction at one contact
// point. n points from b towards a.
func solveContact(a, b body, point, n rl.Vector3) {
	rA := rl.Vector3Subtract(point, a.obb.Center)
	rB := rl.Vector3Subtract(point, b.obb.Center)

	rel := rl.Vector3Subtract(a.pointVelocity(rA), b.pointVelocity(rB))
	vn := rl.Vector3DotProduct(rel, n)
	if vn >= 0 {
		return
	}

	k := a.effectiveMass(rA, n) + b.effectiveMass(rB, n)
	if k <= 0 {
		return
	}

	e := restitution(a, b)
	if -vn < restingSpeed {
		e = 0
	}
	j := -(1 + e) * vn / k
	a.applyImpulse(rA, rl.Vector3Scale(n, j))
	b.applyImpulse(rB, rl.Vector3Scale(n, -j))

	// Friction along the tangential slip direction
	rel = rl.Vector3Subtract(a.pointVelocity(rA), b.pointVelocity(rB))
	vt := rl.Vector3Subtract(rel, rl.Vector3Scale(n, rl.Vector3DotProduct(rel, n)))
	slip := rl.Vector3Length(vt)
	if slip < 1e-4 {
		return
	}
	t := rl.Vector3Scale(vt, 1/slip)
	kt := a.effectiveMass(rA, t) + b.effectiveMass(rB, t)
	if kt <= 0 {
		return
	}
	jt := slip / kt
	if limit := friction(a, b) * j; jt > limit {
		jt = limit
	}
	a.applyImpulse(rA, rl.Vector3Scale(t, -jt))
	b.applyImpulse(rB, rl.Vector3Scale(t, jt))
}

func restitution(a, b body) float32 {
	switch {
	case a.rb != nil && b.rb != nil:
		return (a.rb.Restitution + b.rb.Restitution) / 2
	case a.rb != nil:
		return a.rb.Restitution
	case b.rb != nil:
		return b.rb.Restitution
	}
	return 0
}

func friction(a, b body) float32 {
	switch {
	case a.rb != nil && b.rb != nil:
		return (a.rb.Friction + b.rb.Friction) / 2
	case a.rb != nil:
		return a.rb.Friction
	case b.rb != nil:
		return b.rb.Friction
	}
	return 0
}

// resolveCollision handles two dynamic boxes.
func (p *PhysicsWorld) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)
	if rbA == nil || rbB == nil || boxA == nil || boxB == nil {
		return
	}
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	pushOut := boxOBB(a, boxA).ResolveOBB(boxOBB(b, boxB))
	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 1e-4 {
		return
	}

	// Record first so a hard hit wakes a sleeper before it is solved
	p.recordCollision(a, b)
	bodyA, bodyB := newBody(a, rbA, boxA), newBody(b, rbB, boxB)

	// Split the push based on mass ratio
	total := bodyA.invMass + bodyB.invMass
	if total == 0 {
		return
	}
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(pushOut, bodyA.invMass/total))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(pushOut, bodyB.invMass/total))

	// Contact point halfway between each box's closest point to the other
	onA := ClosestPointOnOBB(bodyA.obb, bodyB.obb.Center)
	onB := ClosestPointOnOBB(bodyB.obb, bodyA.obb.Center)
	point := rl.Vector3Scale(rl.Vector3Add(onA, onB), 0.5)

	solveContact(bodyA, bodyB, point, rl.Vector3Scale(pushOut, 1/pushLen))
}

// resolveStaticCollision handles a dynamic box against a static plane or box.
func (p *PhysicsWorld) resolveStaticCollision(obj, static *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	box := engine.GetComponent[*components.BoxCollider](obj)
	if rb == nil || box == nil || rb.IsSleeping {
		return
	}
	dyn := newBody(obj, rb, box)

	if plane := engine.GetComponent[*components.PlaneCollider](static); plane != nil {
		p.resolvePlane(obj, static, dyn, plane)
		return
	}

	staticBox := engine.GetComponent[*components.BoxCollider](static)
	if staticBox == nil {
		return
	}
	fixed := newBody(static, nil, staticBox)
	pushOut := dyn.obb.ResolveOBB(fixed.obb)
	pushLen := rl.Vector3Length(pushOut)
	if pushLen < 1e-4 {
		return
	}

	p.recordCollision(obj, static)
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, pushOut)

	point := ClosestPointOnOBB(fixed.obb, dyn.obb.Center)
	solveContact(dyn, fixed, point, rl.Vector3Scale(pushOut, 1/pushLen))
}

// resolvePlane pushes the box out along the plane normal using its deepest
// corner and solves the contact at the centroid of penetrating corners.
func (p *PhysicsWorld) resolvePlane(obj, static *engine.GameObject, dyn body, plane *components.PlaneCollider) {
	n := rl.Vector3Normalize(plane.Normal)

	var sum rl.Vector3
	count := 0
	deepest := float32(0)
	for _, c := range dyn.obb.Corners() {
		d := plane.SignedDistance(c)
		if d >= 0 {
			continue
		}
		sum = rl.Vector3Add(sum, c)
		count++
		if d < deepest {
			deepest = d
		}
	}
	if count == 0 {
		return
	}

	p.recordCollision(obj, static)
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(n, -deepest))

	point := rl.Vector3Scale(sum, 1/float32(count))
	point = rl.Vector3Add(point, rl.Vector3Scale(n, -deepest))
	dyn.obb.Center = rl.Vector3Add(dyn.obb.Center, rl.Vector3Scale(n, -deepest))

	solveContact(dyn, body{obj: static}, point, n)
}

func invOrZero(v float32) float32 {
	if v <= 0 {
		return 0
	}
	return 1 / v
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
