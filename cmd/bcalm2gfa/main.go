// cmd/bcalm2gfa/main.go
package main

import (
	"gfaquery/internal/appshell"
	"gfaquery/internal/convertapp"
)

func main() {
	appshell.Main(convertapp.RunContext)
}
