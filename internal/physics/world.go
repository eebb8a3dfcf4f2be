package physics

import (
	"log"
	"math"
	"unsafe"

	"asciidrop/internal/components"
	"asciidrop/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultCellSize suits boxes a few hundred units across.
const DefaultCellSize = 256.0

// restingSpeed is the approach speed below which contacts stop bouncing.
const restingSpeed = 6.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

// CollisionPair represents two objects that are colliding
type CollisionPair struct {
	A, B *engine.GameObject
}

// makePair creates a consistent collision pair (smaller pointer first)
func makePair(a, b *engine.GameObject) CollisionPair {
	ptrA, ptrB := uintptr(unsafe.Pointer(a)), uintptr(unsafe.Pointer(b))
	if ptrA > ptrB {
		return CollisionPair{A: b, B: a}
	}
	return CollisionPair{A: a, B: b}
}

type PhysicsWorld struct {
	Gravity  rl.Vector3
	CellSize float32
	Objects  []*engine.GameObject // dynamic rigidbodies
	Statics  []*engine.GameObject // no rigidbody (ground plane, walls)
	grid     map[CellKey][]*engine.GameObject

	// Collision tracking for callbacks
	activeCollisions  map[CollisionPair]bool // collisions from last step
	currentCollisions map[CollisionPair]bool // collisions this step

	steps uint64
}

func NewPhysicsWorld(gravity rl.Vector3) *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:           gravity,
		CellSize:          DefaultCellSize,
		Objects:           make([]*engine.GameObject, 0),
		Statics:           make([]*engine.GameObject, 0),
		grid:              make(map[CellKey][]*engine.GameObject),
		activeCollisions:  make(map[CollisionPair]bool),
		currentCollisions: make(map[CollisionPair]bool),
	}
}

func (p *PhysicsWorld) posToCell(pos rl.Vector3) CellKey {
	size := p.CellSize
	if size <= 0 {
		size = DefaultCellSize
	}
	return CellKey{
		X: int(math.Floor(float64(pos.X / size))),
		Y: int(math.Floor(float64(pos.Y / size))),
		Z: int(math.Floor(float64(pos.Z / size))),
	}
}

// rebuildGrid inserts every dynamic object into each cell its bounds touch.
func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		box := engine.GetComponent[*components.BoxCollider](obj)
		if box == nil {
			continue
		}
		bounds := boxOBB(obj, box).Bounds()
		lo, hi := p.posToCell(bounds.Min), p.posToCell(bounds.Max)
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					key := CellKey{x, y, z}
					p.grid[key] = append(p.grid[key], obj)
				}
			}
		}
	}
}

func (p *PhysicsWorld) AddObject(g *engine.GameObject) {
	if p.Contains(g) {
		return
	}
	rb := engine.GetComponent[*components.Rigidbody](g)
	if rb == nil {
		p.Statics = append(p.Statics, g)
	} else {
		rb.Wake()
		p.Objects = append(p.Objects, g)
	}
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	removed := false
	for i, obj := range p.Objects {
		if obj == g {
			p.Objects = append(p.Objects[:i], p.Objects[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		for i, obj := range p.Statics {
			if obj == g {
				p.Statics = append(p.Statics[:i], p.Statics[i+1:]...)
				removed = true
				break
			}
		}
	}
	if !removed {
		return
	}

	// Removed bodies get no exit callbacks
	for pair := range p.activeCollisions {
		if pair.A == g || pair.B == g {
			delete(p.activeCollisions, pair)
		}
	}
}

// Contains reports whether g is simulated by this world.
func (p *PhysicsWorld) Contains(g *engine.GameObject) bool {
	for _, obj := range p.Objects {
		if obj == g {
			return true
		}
	}
	for _, obj := range p.Statics {
		if obj == g {
			return true
		}
	}
	return false
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

// SleepingCount returns how many dynamic objects are asleep.
func (p *PhysicsWorld) SleepingCount() int {
	n := 0
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil && rb.IsSleeping {
			n++
		}
	}
	return n
}

// Step advances the simulation by exactly dt seconds.
func (p *PhysicsWorld) Step(deltaTime float32) {
	p.steps++
	p.currentCollisions = make(map[CollisionPair]bool)

	// 1. Apply gravity and integrate
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, deltaTime))
		}

		obj.Transform.Position = rl.Vector3Add(
			obj.Transform.Position,
			rl.Vector3Scale(rb.Velocity, deltaTime),
		)
		obj.Transform.Rotation = rl.Vector3Add(
			obj.Transform.Rotation,
			rl.Vector3Scale(rb.AngularVelocity, deltaTime),
		)

		// Angular damping (time-based so it's step-size independent)
		damping := float32(1.0) - (1.0-rb.AngularDamping)*deltaTime*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)
	}

	// 2. Broad-phase: spatial hashing, then narrow-phase per candidate pair
	p.rebuildGrid()
	checked := make(map[CollisionPair]bool)
	for _, cell := range p.grid {
		for i := 0; i < len(cell); i++ {
			for j := i + 1; j < len(cell); j++ {
				pair := makePair(cell[i], cell[j])
				if checked[pair] {
					continue
				}
				checked[pair] = true
				p.resolveCollision(pair.A, pair.B)
			}
		}
	}

	// 3. Dynamic vs static
	for _, obj := range p.Objects {
		for _, static := range p.Statics {
			p.resolveStaticCollision(obj, static)
		}
	}

	// 4. Sleep check after contacts have removed resting velocity
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil {
			rb.TrySleep(deltaTime)
		}
	}

	// 5. Dispatch collision callbacks
	p.dispatchCollisionCallbacks()
}

// recordCollision marks a collision pair as active this step and wakes
// sleeping bodies hit hard enough.
func (p *PhysicsWorld) recordCollision(a, b *engine.GameObject) {
	p.currentCollisions[makePair(a, b)] = true

	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	relSpeed := rl.Vector3Length(rl.Vector3Subtract(rbA.Velocity, rbB.Velocity))
	wakeThreshold := 2 * maxf(rbA.SleepVelocity, rbB.SleepVelocity)
	if relSpeed > wakeThreshold {
		rbA.Wake()
		rbB.Wake()
	}
}

// dispatchCollisionCallbacks sends OnCollisionEnter/Exit to handlers
func (p *PhysicsWorld) dispatchCollisionCallbacks() {
	for pair := range p.currentCollisions {
		if !p.activeCollisions[pair] {
			notifyCollisionEnter(pair.A, pair.B)
			notifyCollisionEnter(pair.B, pair.A)
		}
	}
	for pair := range p.activeCollisions {
		if !p.currentCollisions[pair] {
			notifyCollisionExit(pair.A, pair.B)
			notifyCollisionExit(pair.B, pair.A)
		}
	}
	p.activeCollisions = p.currentCollisions
}

func notifyCollisionEnter(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionEnter(other)
		}
	}
}

func notifyCollisionExit(obj, other *engine.GameObject) {
	for _, comp := range obj.Components() {
		if handler, ok := comp.(engine.CollisionHandler); ok {
			handler.OnCollisionExit(other)
		}
	}
}

// LogStats prints a one-line summary of the body counts.
func (p *PhysicsWorld) LogStats() {
	log.Printf("Physics: %d dynamic, %d sleeping, %d static, %d steps",
		len(p.Objects), p.SleepingCount(), len(p.Statics), p.steps)
}
