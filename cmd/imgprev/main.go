package main

import "github.com/blacktop/go-imgprev/cmd/imgprev/cmd"

func main() {
	cmd.Execute()
}
