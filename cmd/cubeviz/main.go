// cubeviz - terminal 3x3x3 cube player with a remote solver.
package main

import (
	"github.com/TheDeepDelve/cubeviz/internal/cli"
)

func main() {
	cli.Execute()
}
