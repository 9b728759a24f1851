package bvh

import (
	"encoding/binary"
	"io"

	"github.com/kjhurst/raybvh/types"
)

// WriteTo writes b in the canonical on-disk form: a node count followed by
// that many node records, then a triangle count followed by that many
// triangle records, every field little-endian. This layout is a fixed wire
// contract (the byte order and field widths are part of the interface, not
// an implementation choice), so it is written directly against
// encoding/binary rather than through a general-purpose codec.
func (b *BVH) WriteTo(w io.Writer) (int64, error) {
	var written int64

	if err := binary.Write(w, binary.LittleEndian, uint32(len(b.nodes))); err != nil {
		return written, err
	}
	written += 4

	for _, n := range b.nodes {
		if err := writeVec3(w, n.Min); err != nil {
			return written, err
		}
		written += 12
		if err := writeVec3(w, n.Max); err != nil {
			return written, err
		}
		written += 12

		if err := binary.Write(w, binary.LittleEndian, n.Offset); err != nil {
			return written, err
		}
		written += 4
		if err := binary.Write(w, binary.LittleEndian, n.Count); err != nil {
			return written, err
		}
		written += 2
		if err := binary.Write(w, binary.LittleEndian, n.Axis); err != nil {
			return written, err
		}
		written += 2
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(b.triangles))); err != nil {
		return written, err
	}
	written += 4

	for _, t := range b.triangles {
		if err := writeVec3(w, t.P0); err != nil {
			return written, err
		}
		written += 12
		if err := writeVec3(w, t.P1); err != nil {
			return written, err
		}
		written += 12
		if err := writeVec3(w, t.P2); err != nil {
			return written, err
		}
		written += 12

		if err := binary.Write(w, binary.LittleEndian, t.Index); err != nil {
			return written, err
		}
		written += 4
	}

	return written, nil
}

// ReadFrom parses the canonical form written by WriteTo.
func ReadFrom(r io.Reader) (*BVH, error) {
	var nodeCount uint32
	if err := binary.Read(r, binary.LittleEndian, &nodeCount); err != nil {
		return nil, err
	}

	nodes := make([]Node, nodeCount)
	for i := range nodes {
		min, err := readVec3(r)
		if err != nil {
			return nil, err
		}
		max, err := readVec3(r)
		if err != nil {
			return nil, err
		}

		var offset uint32
		if err := binary.Read(r, binary.LittleEndian, &offset); err != nil {
			return nil, err
		}
		var count, axis uint16
		if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
			return nil, err
		}
		if err := binary.Read(r, binary.LittleEndian, &axis); err != nil {
			return nil, err
		}

		nodes[i] = Node{Min: min, Max: max, Offset: offset, Count: count, Axis: axis}
	}

	var triCount uint32
	if err := binary.Read(r, binary.LittleEndian, &triCount); err != nil {
		return nil, err
	}

	triangles := make([]Triangle, triCount)
	for i := range triangles {
		p0, err := readVec3(r)
		if err != nil {
			return nil, err
		}
		p1, err := readVec3(r)
		if err != nil {
			return nil, err
		}
		p2, err := readVec3(r)
		if err != nil {
			return nil, err
		}

		var index uint32
		if err := binary.Read(r, binary.LittleEndian, &index); err != nil {
			return nil, err
		}

		triangles[i] = Triangle{P0: p0, P1: p1, P2: p2, Index: index}
	}

	return &BVH{nodes: nodes, triangles: triangles}, nil
}

func writeVec3(w io.Writer, v types.Vec3) error {
	if err := binary.Write(w, binary.LittleEndian, v[0]); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, v[1]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, v[2])
}

func readVec3(r io.Reader) (types.Vec3, error) {
	var v types.Vec3
	if err := binary.Read(r, binary.LittleEndian, &v[0]); err != nil {
		return v, err
	}
	if err := binary.Read(r, binary.LittleEndian, &v[1]); err != nil {
		return v, err
	}
	if err := binary.Read(r, binary.LittleEndian, &v[2]); err != nil {
		return v, err
	}
	return v, nil
}
