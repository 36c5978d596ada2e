package main

import (
	"context"
	"fmt"
	"os"

	"cow-catalog/internal/cli"
)

// @title Cow Catalog API
// @version 1.0
// @description Catálogo de ganado: alta, historial de eventos, filtros y derivados (ADG, último evento).
// @BasePath /api/v1
func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
