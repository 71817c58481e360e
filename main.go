package main

import "github.com/gilchrisn/heterogeneous-graphlets/pkg/cmd"

func main() {
	cmd.Execute()
}
