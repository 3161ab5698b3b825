package main

import "github.com/Skotchmaster/shop_demo/internal/cli"

func main() {
	cli.Execute()
}
