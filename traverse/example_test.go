package traverse_test

import (
	"fmt"

	"github.com/katalvlaran/depthlath/connectivity"
	"github.com/katalvlaran/depthlath/traverse"
)

// ExampleAngular finds the route with the least turning between two streets
// of a small grid of segments.
func ExampleAngular() {
	// 0 ─ 1 ─ 2 runs straight; 3 branches off 1 at a right angle and 4
	// continues straight from 3.
	sg, _ := connectivity.NewSegmentGraph(5)
	_ = sg.Join(0, connectivity.Forward, 1, connectivity.Backward, 0)
	_ = sg.Join(1, connectivity.Forward, 2, connectivity.Backward, 0)
	_ = sg.Join(1, connectivity.Forward, 3, connectivity.Backward, connectivity.SegmentCost(90))
	_ = sg.Join(3, connectivity.Forward, 4, connectivity.Backward, 0)

	res, err := traverse.Angular(sg, []int{0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	path, _ := res.PathTo(4)
	fmt.Println(path, res.Depth[4])
	// Output:
	// [0 1 3 4] 0.5
}

// ExampleStep measures visual step depth in an L-shaped room.
func ExampleStep() {
	pg, _ := connectivity.NewVisibilityGrid([][]int{
		{1, 0, 0},
		{1, 0, 0},
		{1, 1, 1},
	})
	res, _ := traverse.Step(pg, []int{0})
	end, _ := pg.Ref(2, 2)
	fmt.Println(res.Depth[end])
	// Output:
	// 2
}
