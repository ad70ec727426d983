// Command corona-logdemo initialises corona-log from a YAML file, the
// environment and flags, logs one line per level and shuts down.
//
//	go build -o corona-logdemo ./cmd/corona-logdemo
//	./corona-logdemo --level trace --file logs/demo.log --count 3
package main

import (
	"fmt"
	"os"

	"github.com/coronaengine/corona-log/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
