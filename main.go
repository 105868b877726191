package main

import "github.com/Manu343726/micro8/cmd"

func main() {
	cmd.Execute()
}
