// Command foxplot plots time series from JSON or MessagePack record files.
//
// Usage:
//
//	foxplot run.jsonl -t /time -l /obs/velocity,/action/velocity -r /obs/current
//	foxplot labels run.mpack.zst
//	foxplot snapshot run.jsonl -o run.fxs
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
