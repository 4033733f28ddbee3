package main

import "github.com/Taichi-iskw/followban/cmd"

func main() {
	cmd.Execute()
}
