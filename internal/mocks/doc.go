// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, tests reuse the
// standardized mocks here:
//
//   - MockGenerator: function-field mock of generation.Generator with call tracking
//   - TestifyMockSessionStore: testify/mock implementation of store.SessionStore
//
// Usage:
//
//	gen := &mocks.MockGenerator{
//	    GenerateTextFn: func(ctx context.Context, prompt string) (string, error) {
//	        return `[{"name": "Kite"}]`, nil
//	    },
//	}
//
// When adding a new mock to this package:
//  1. Create a new file named after the interface being mocked
//  2. Implement the mock struct with function fields for each interface method
//  3. Document any helper methods or special functionality
package mocks
