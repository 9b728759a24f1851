package bvh

import "errors"

var (
	ErrEmptyMesh = errors.New("bvh: mesh has no triangles")
	ErrNoBuilder = errors.New("bvh: no builder supplied")
	ErrRayCount  = errors.New("bvh: len(rays) != len(hits)")
)
