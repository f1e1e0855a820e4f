package main

import "ruleweaver/cmd/ruleweaver/cmd"

func main() {
	cmd.Execute()
}
