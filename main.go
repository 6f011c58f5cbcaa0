package main

import cmd "github.com/rohmanhakim/pydocs-scraper/internal/cli"

func main() {
	cmd.Execute()
}
