// Package main provides the sqlfront CLI.
package main

import "github.com/queryscope/sqlfront/internal/cli"

func main() {
	cli.Execute()
}
