package time_test

import (
	"fmt"

	timestats "github.com/openwaterhealth/lifu-hydrophone/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1e5, -2e5, 0.5e5})
	fmt.Printf("peak=%.0f at %d, range=%.0f\n", s.Peak, s.MinPos, s.Range)

	// Output:
	// peak=200000 at 1, range=300000
}
