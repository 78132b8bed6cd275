package main

import "github.com/aaronzipp/spyfall-chat/internal/cli"

func main() {
	cli.Execute()
}
