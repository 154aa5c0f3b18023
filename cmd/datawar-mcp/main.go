package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	datawarmcp "github.com/mozilla/datawar/internal/mcp"
)

func main() {
	cards := flag.String("cards", "", "path to a composition YAML file (default: stock deck)")
	flag.Parse()

	datawarmcp.SetConfigFile(*cards)

	s := server.NewMCPServer("datawar", "1.0.0")
	datawarmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
