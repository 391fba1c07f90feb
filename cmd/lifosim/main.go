// Command lifosim simulates LIFO page replacement and plays the result back
// in the terminal or through a web server.
package main

import (
	"os"

	"github.com/tebeka/atexit"
)

func main() {
	err := newRootCmd(os.Stdout, os.Stderr).Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}
