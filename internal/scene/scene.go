// Package scene is the renderer-agnostic scene graph: an ordered list of
// objects with transforms, geometry and materials.
package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Scene is an ordered collection of objects. It is mutated only on the main
// thread: during setup and from asset-load continuations.
type Scene struct {
	Background mgl32.Vec3

	objects []*Object
	version uint64
}

func New() *Scene {
	return &Scene{}
}

// Add appends objects in order and bumps the version.
func (s *Scene) Add(objs ...*Object) {
	if len(objs) == 0 {
		return
	}
	s.objects = append(s.objects, objs...)
	s.version++
}

// Objects returns the objects in insertion order. The slice must not be
// modified.
func (s *Scene) Objects() []*Object {
	return s.objects
}

func (s *Scene) Len() int {
	return len(s.objects)
}

// Version changes whenever the object list changes. Renderers compare it to
// decide when cached draw batches are stale.
func (s *Scene) Version() uint64 {
	return s.version
}

// Find returns the first object with the given name, or nil.
func (s *Scene) Find(name string) *Object {
	for _, o := range s.objects {
		if o.Name == name {
			return o
		}
	}
	return nil
}
