// Package meshexport renders meshes and 2D profiles to the host-facing
// JSON wire form and to interchange formats used by downstream CAM/slicer
// tooling: 3MF, SVG, DXF.
package meshexport

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/ajstarks/svgo"
	"github.com/chazu/csgforge/pkg/meshkit"
	"github.com/chazu/csgforge/pkg/polygon2d"
	"github.com/hpinc/go3mf"
	"github.com/qmuntal/opc"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// ToJSON renders the wire mesh form used by the host/frontend bridge.
func ToJSON(m *meshkit.Mesh, nodeName string) ([]byte, error) {
	w := m.ToWire(nodeName)
	return json.Marshal(w)
}

// To3MF writes a single-object 3MF package for slicer-ready solid export.
func To3MF(m *meshkit.Mesh) ([]byte, error) {
	model := &go3mf.Model{}
	mesh := new(go3mf.MeshResource)
	mesh.ID = 1
	for _, v := range m.Vertices {
		mesh.Mesh.Vertices.Vertex = append(mesh.Mesh.Vertices.Vertex, go3mf.Point3D{
			float32(v.X), float32(v.Y), float32(v.Z),
		})
	}
	for t := 0; t+2 < len(m.Indices); t += 3 {
		mesh.Mesh.Triangles.Triangle = append(mesh.Mesh.Triangles.Triangle, go3mf.Triangle{
			V1: int(m.Indices[t]), V2: int(m.Indices[t+1]), V3: int(m.Indices[t+2]),
		})
	}
	model.Resources.Assets = append(model.Resources.Assets, mesh)
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: mesh.ID})

	var buf bytes.Buffer
	w, err := opc.NewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("meshexport: opening 3mf package writer: %w", err)
	}
	enc := go3mf.NewEncoder(w)
	if err := enc.Encode(model); err != nil {
		return nil, fmt.Errorf("meshexport: encoding 3mf model: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("meshexport: closing 3mf package: %w", err)
	}
	return buf.Bytes(), nil
}

// ToSVG renders a 2D profile's outer ring as a closed polygon.
func ToSVG(profile polygon2d.Profile, width, height int) []byte {
	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)
	xs := make([]int, len(profile.Outer))
	ys := make([]int, len(profile.Outer))
	for i, p := range profile.Outer {
		xs[i] = int(p.X) + width/2
		ys[i] = height/2 - int(p.Y)
	}
	canvas.Polygon(xs, ys, "fill:none;stroke:black;stroke-width:1")
	canvas.End()
	return buf.Bytes()
}

// ToDXF renders a 2D profile's outer ring as a closed polyline entity,
// writing into an in-memory drawing rather than a filesystem path.
func ToDXF(profile polygon2d.Profile) ([]byte, error) {
	d := dxf.NewDrawing()
	d.Layer("outline", false)
	pts := make([][]float64, 0, len(profile.Outer)+1)
	for _, p := range profile.Outer {
		pts = append(pts, []float64{p.X, p.Y, 0})
	}
	if len(pts) > 0 {
		pts = append(pts, pts[0])
	}
	d.Polyline(pts...)

	var buf bytes.Buffer
	if err := writeDrawing(d, &buf); err != nil {
		return nil, fmt.Errorf("meshexport: encoding dxf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeDrawing(d *drawing.Drawing, buf *bytes.Buffer) error {
	return d.Write(buf)
}
