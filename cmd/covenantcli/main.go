package main

import (
	"runtime"

	cmd "github.com/tokenizando/covenant/cmd/covenantcli/commands"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	cmd.Execute()
}
