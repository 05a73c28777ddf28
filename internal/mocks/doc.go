// Package mocks provides centralized mock implementations for testing.
//
// Each mock has function fields for the interface methods, default return
// values and mutex-guarded call tracking:
//
//	gen := mocks.NewMockGeneratorWithText("Title: Planets\nQ: Red planet? | A: Mars\n")
//	svc := service.NewDeckService(gen, deckStore.Opener(), nil)
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Track calls so tests can assert on them
package mocks
