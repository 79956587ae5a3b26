package main

import "github.com/noahvogt/modulplaner-backend/cmd"

func main() {
	cmd.Execute()
}
