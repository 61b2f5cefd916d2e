package main

import "github.com/shengfai/socialite/cmd"

func main() {
	cmd.Execute()
}
