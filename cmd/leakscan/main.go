// Command leakscan is the ProfitLeak-Intelligence CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/turtacn/ProfitLeak-Intelligence/internal/interfaces/cli"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "leakscan:", err)
		os.Exit(1)
	}
}

//Personal.AI order the ending
