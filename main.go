package main

import "github.com/Rutuja-Parab/policyzen/cmd"

func main() {
	cmd.Execute()
}
