package main

import (
	"fmt"
	"os"
)

func usage() {
	fmt.Println("usage: mainpkg")
	os.Exit(2) // want "os.Exit is forbidden outside main function"
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	fmt.Printf("%s\n", os.Args[1])
}
