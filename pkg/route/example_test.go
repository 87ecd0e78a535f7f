package route_test

import (
	"fmt"

	"github.com/futurita/flowbox/pkg/board"
	"github.com/futurita/flowbox/pkg/geom"
	"github.com/futurita/flowbox/pkg/route"
)

func ExampleRoute() {
	b := board.New("demo")
	a := b.AddNode(board.KindProcess, 0, 0)
	c := b.AddNode(board.KindProcess, 400, 0)
	d := b.AddNode(board.KindProcess, 400, 300)

	// Horizontally aligned anchors get a straight line.
	straight := route.Route(a, geom.SideRight, c, geom.SideLeft)
	fmt.Println("Straight:", !straight.Curved, "points:", len(straight.Points))

	// Offset anchors get a cubic Bezier: start, two controls, end.
	curved := route.Route(a, geom.SideRight, d, geom.SideLeft)
	fmt.Println("Curved:", curved.Curved, "points:", len(curved.Points))
	// Output:
	// Straight: true points: 2
	// Curved: true points: 4
}
