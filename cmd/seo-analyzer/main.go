package main

import "go-seo-analyzer/internal/cli"

func main() {
	cli.Execute()
}
