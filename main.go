/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/

package main

import "github.com/sanix-darker/ghrev/cmd"

func main() {
	cmd.Execute()
}
