package engine

// Scene is the renderable tree. Only top-level objects are listed in
// GameObjects; children are reached through their parents.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	uidMap      map[uint64]*GameObject
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
		uidMap:      make(map[uint64]*GameObject),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	if s.uidMap == nil {
		s.uidMap = make(map[uint64]*GameObject)
	}
	s.GameObjects = append(s.GameObjects, g)
	g.Walk(func(obj *GameObject) bool {
		obj.Scene = s
		s.uidMap[obj.UID] = obj
		return true
	})
}

// RemoveGameObject detaches g and all of its descendants from the scene.
func (s *Scene) RemoveGameObject(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			break
		}
	}
	g.Walk(func(obj *GameObject) bool {
		if obj != g {
			s.removeTopLevel(obj)
		}
		delete(s.uidMap, obj.UID)
		obj.Scene = nil
		return true
	})
}

func (s *Scene) removeTopLevel(g *GameObject) {
	for i, obj := range s.GameObjects {
		if obj == g {
			s.GameObjects = append(s.GameObjects[:i], s.GameObjects[i+1:]...)
			return
		}
	}
}

// Contains reports whether g (or any object with its UID) is in the scene.
func (s *Scene) Contains(g *GameObject) bool {
	if g == nil {
		return false
	}
	return s.uidMap[g.UID] == g
}

func (s *Scene) FindByUID(uid uint64) *GameObject {
	return s.uidMap[uid]
}

func (s *Scene) FindByName(name string) *GameObject {
	for _, g := range s.GameObjects {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

// Update starts objects added since the last frame before updating them.
func (s *Scene) Update(deltaTime float32) {
	for _, g := range s.GameObjects {
		g.Start()
		g.Update(deltaTime)
	}
}
