package foxplot_test

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/foxplot/foxplot"
	"github.com/foxplot/foxplot/decode"
	"github.com/foxplot/foxplot/estimate"
)

func Example() {
	input := `{"time": 0, "config_a": 12345}
{"time": 1, "x": 12}
{"time": 2, "x": 22}`

	fox, _ := foxplot.New(foxplot.WithTime("/time"), foxplot.WithLogger(slog.New(slog.DiscardHandler)))
	if err := fox.ReadRecords(decode.JSON(strings.NewReader(input))); err != nil {
		fmt.Println(err)
		return
	}
	_ = fox.Freeze()

	fmt.Println(fox.Labels())
	configA, _ := fox.Series("/config_a")
	fmt.Println(configA)
	x, _ := fox.Series("/x")
	fmt.Println(x)

	// Output:
	// [/config_a /time /x]
	// Time series with values: [12345.0 12345.0 12345.0]
	// Time series with values: [nan 12.0 22.0]
}

func ExampleFox_Series() {
	fox, _ := foxplot.New(foxplot.WithTime("/time"), foxplot.WithLogger(slog.New(slog.DiscardHandler)))
	for i := range 5 {
		_ = fox.Unpack(map[string]any{"time": float64(i), "position": float64(i + 1)})
	}
	_ = fox.Freeze()

	position, _ := fox.Series("/position")
	velocity, _ := estimate.Deriv(position, estimate.Second)
	fmt.Println(velocity.Label())
	fmt.Println(velocity)

	// Output:
	// deriv(/position, unit=s)
	// Time series with values: [1.0 1.0 1.0 1.0 1.0]
}
