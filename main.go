/*
Copyright © 2025 changheonshin
*/
package main

import "github.com/devlikebear/parafile/cmd"

func main() {
	cmd.Execute()
}
