package analysis_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/depthlath/analysis"
	"github.com/katalvlaran/depthlath/attr"
	"github.com/katalvlaran/depthlath/connectivity"
)

// ExampleSegmentTulipShortestPath numbers a straight route by steps remaining.
func ExampleSegmentTulipShortestPath() {
	sg, _ := connectivity.NewSegmentGraph(4)
	for i := 0; i < 3; i++ {
		_ = sg.Join(i, connectivity.Forward, i+1, connectivity.Backward, 0)
	}
	tbl := attr.NewTable(sg.Refs())
	rc, _ := analysis.NewRunContext(context.Background(), tbl, analysis.WithSelection(0, 3))
	a, _ := analysis.NewSegmentTulipShortestPath(sg)

	res, err := analysis.Execute(a, rc)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	col, _ := tbl.ColumnIndex(analysis.ColAngularPathOrder)
	order, _ := tbl.Column(col)
	fmt.Println(res.Completed, order)
	// Output:
	// true [3 2 1 0]
}

// ExampleVisualGlobal reports how many points each point reaches.
func ExampleVisualGlobal() {
	pg, _ := connectivity.NewVisibilityGrid([][]int{
		{1, 1, 1},
		{0, 0, 1},
	})
	tbl := attr.NewTable(pg.Refs())
	rc, _ := analysis.NewRunContext(context.Background(), tbl)
	a, _ := analysis.NewVisualGlobal(pg, analysis.WithWorkers(2))

	if _, err := a.Run(rc); err != nil {
		fmt.Println("error:", err)
		return
	}
	col, _ := tbl.ColumnIndex(analysis.ColVisualMeanDepth)
	end, _ := pg.Ref(0, 0)
	row, _ := tbl.Row(end)
	fmt.Printf("%.2f\n", row.Value(col))
	// Output:
	// 1.33
}
