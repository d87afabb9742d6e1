// Command geronimo is a two-player chess clock for the terminal, with an
// optional gRPC host that other devices can tap and watch.
package main

import "github.com/oshokin/geronimo/cmd/geronimo/cmd"

func main() {
	cmd.Execute()
}
