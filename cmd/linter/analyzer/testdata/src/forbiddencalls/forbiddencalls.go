package forbiddencalls

import (
	"fmt"
	"log"
	"os"
)

func SomePanicFunction() {
	panic("this is forbidden") // want "panic is forbidden"
}

func SomeLogFatalFunction() {
	log.Fatal("this is forbidden") // want "log.Fatal is forbidden outside main function"
}

func SomeOsExitFunction() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func MultipleCallsFunction() {
	panic("panic 1")   // want "panic is forbidden"
	log.Fatal("fatal") // want "log.Fatal is forbidden outside main function"
	os.Exit(0)         // want "os.Exit is forbidden outside main function"
}

func PrintFunction() {
	fmt.Println("hello")     // want `fmt.Println is forbidden outside package main, use the logger`
	fmt.Printf("%d\n", 1)    // want `fmt.Printf is forbidden outside package main, use the logger`
	_ = fmt.Sprintf("%d", 1) // formatting into a string is fine
	_ = fmt.Errorf("wrap: %w", os.ErrNotExist)
}

type shadow struct{}

func (shadow) Exit(int) {}

func ShadowedNames() {
	var os shadow
	os.Exit(1)
}
