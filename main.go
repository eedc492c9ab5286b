package main

import (
	"context"

	"github.com/bjulian5/goaltools/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
