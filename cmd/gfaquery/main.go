// cmd/gfaquery/main.go
package main

import (
	"gfaquery/internal/app"
	"gfaquery/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
