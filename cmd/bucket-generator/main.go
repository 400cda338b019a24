package main

import "github.com/superyngo/wenget-bucket/cmd/bucket-generator/cmd"

func main() {
	cmd.Execute()
}
