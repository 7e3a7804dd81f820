// Command rasterforge is a terminal demo and benchmark harness for the
// rasterforge rendering pipeline: it loads an OBJ or GLTF model and either
// drives it live to the terminal (render) or measures throughput with no
// display attached (bench).
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
