package main

import "github.com/Rorical/NutriVision/cmd"

func main() {
	cmd.Execute()
}
