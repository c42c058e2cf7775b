package main

import "planloop/cmd/pl/root"

func main() {
	root.Execute()
}
