package main

import "github.com/TykTechnologies/graphql-froid/cmd"

func main() {
	cmd.Execute()
}
