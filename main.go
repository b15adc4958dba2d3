package main

import "github.com/Yates-Labs/t6post/cmd"

func main() {
	cmd.Execute()
}
