package main

import "github.com/tristendillon/easyroutes/cmd"

func main() {
	cmd.Execute()
}
