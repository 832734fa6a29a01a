package main

import (
	"ttdialect/cmd"

	_ "github.com/godror/godror"
	_ "github.com/sijms/go-ora/v2"
)

func main() {
	cmd.Execute()
}
