package main

import "github.com/Emerentius/partial-application/partial"

func sub(a, b int) int { return a - b }

func main() {
	// placeholder in the callable position never matches the grammar
	g := partial.Gen[func(int, int) int]("_ => _, _")
	g(1, 2)
}
