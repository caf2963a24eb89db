// cmd/main.go
package main

import (
	"minibank/app"
)

// @title           MiniBank API
// @version         1.0
// @description     In-memory or Postgres-backed bank account registry.

// @host      localhost:8080
// @BasePath  /
func main() {
	app.Run()
}
