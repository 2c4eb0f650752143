package main

import (
	"fmt"

	"github.com/Emerentius/partial-application/partial"
)

func foo(a, b, c, d, mul, off int) int {
	return (a+b*b+c*c*c+d*d*d*d)*mul - off
}

func sub(a, b int) int { return a - b }

func main() {
	off := 10
	bar := partial.Gen[func(int, int, int) int]("foo => _, _, 10, _, 10, off")
	diff := partial.Gen[func(int) int]("move sub => _, off")
	fixed := partial.Gen[func() int]("sub(3, 2)")
	fmt.Println(bar(15, 15, 42), diff(12), fixed(), off)
}
