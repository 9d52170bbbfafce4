package main

import (
	"os"

	"github.com/azrlmaster/my-typingmind-mcp-connector/cmd/tmmcp/cli"
)

func main() {
	os.Exit(cli.Execute())
}
