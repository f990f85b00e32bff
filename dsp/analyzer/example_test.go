package analyzer_test

import (
	"fmt"

	"github.com/cwbudde/simple-eq/dsp/analyzer"
)

func ExampleChannelCollector() {
	c := analyzer.NewChannelCollector(analyzer.Left)
	c.Prepare(2048)

	block := make([]float64, 1000)
	for range 5 {
		c.UpdateFrom([][]float64{block})
	}
	fmt.Println(c.CompleteBuffersAvailable(), c.Pending())
	// Output: 2 904
}
