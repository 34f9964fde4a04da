package main

import "github.com/haxorport/postman-rewrite/cmd"

func main() {
	cmd.Execute()
}
