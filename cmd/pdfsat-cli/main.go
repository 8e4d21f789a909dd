package main

import "pdfsat/cmd/pdfsat-cli/cmd"

func main() {
	cmd.Execute()
}
